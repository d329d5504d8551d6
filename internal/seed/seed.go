// Package seed holds the roster and appointments the demo starts with.
package seed

import (
	"time"

	"mediconnect/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// Identifiers of the records used as login fallbacks.
const (
	FirstDoctorID  = "d1"
	FirstPatientID = "p1"
	AdminID        = "admin1"
)

func avatar(name, background string) string {
	return "https://ui-avatars.com/api/?name=" + name + "&background=" + background
}

// Doctors returns a fresh copy of the seeded doctors.
func Doctors() []entity.User {
	return []entity.User{
		{
			ID:        "d1",
			Name:      "Dr. Aarav Patel",
			Email:     "aarav.patel@mediconnect.com",
			Role:      entity.RoleDoctor,
			AvatarURL: avatar("Aarav+Patel", "0D9488&color=fff"),
			DoctorProfile: &entity.DoctorProfile{
				Specialization:  "Cardiologist",
				YearsExperience: 18,
				ConsultationFee: decimal.NewFromInt(1500),
				Rating:          4.9,
				Location:        "Mumbai, MH",
				Bio:             "Senior Interventional Cardiologist with expertise in complex angioplasties and heart failure management. Formerly at AIIMS.",
				AvailableSlots:  []string{"10:00 AM", "11:30 AM", "04:00 PM", "06:00 PM"},
			},
		},
		{
			ID:        "d2",
			Name:      "Dr. Priya Sharma",
			Email:     "priya.sharma@mediconnect.com",
			Role:      entity.RoleDoctor,
			AvatarURL: avatar("Priya+Sharma", "E11D48&color=fff"),
			DoctorProfile: &entity.DoctorProfile{
				Specialization:  "Dermatologist",
				YearsExperience: 10,
				ConsultationFee: decimal.NewFromInt(800),
				Rating:          4.8,
				Location:        "New Delhi, DL",
				Bio:             "Cosmetic dermatologist specializing in laser treatments, acne management, and anti-aging therapies.",
				AvailableSlots:  []string{"09:00 AM", "10:00 AM", "02:00 PM"},
			},
		},
		{
			ID:        "d3",
			Name:      "Dr. Rajesh Iyer",
			Email:     "rajesh.iyer@mediconnect.com",
			Role:      entity.RoleDoctor,
			AvatarURL: avatar("Rajesh+Iyer", "4F46E5&color=fff"),
			DoctorProfile: &entity.DoctorProfile{
				Specialization:  "Neurologist",
				YearsExperience: 22,
				ConsultationFee: decimal.NewFromInt(2000),
				Rating:          4.9,
				Location:        "Bangalore, KA",
				Bio:             "Expert in stroke management, epilepsy, and movement disorders with over two decades of clinical experience.",
				AvailableSlots:  []string{"11:00 AM", "01:00 PM", "05:00 PM"},
			},
		},
		{
			ID:        "d4",
			Name:      "Dr. Sneha Gupta",
			Email:     "sneha.gupta@mediconnect.com",
			Role:      entity.RoleDoctor,
			AvatarURL: avatar("Sneha+Gupta", "9333EA&color=fff"),
			DoctorProfile: &entity.DoctorProfile{
				Specialization:  "Pediatrician",
				YearsExperience: 12,
				ConsultationFee: decimal.NewFromInt(700),
				Rating:          4.7,
				Location:        "Pune, MH",
				Bio:             "Compassionate child specialist focusing on newborn care, vaccination, and adolescent health.",
				AvailableSlots:  []string{"09:30 AM", "12:00 PM", "04:30 PM"},
			},
		},
		{
			ID:        "d5",
			Name:      "Dr. Vikram Singh",
			Email:     "vikram.singh@mediconnect.com",
			Role:      entity.RoleDoctor,
			AvatarURL: avatar("Vikram+Singh", "D97706&color=fff"),
			DoctorProfile: &entity.DoctorProfile{
				Specialization:  "Orthopedic Surgeon",
				YearsExperience: 15,
				ConsultationFee: decimal.NewFromInt(1200),
				Rating:          4.6,
				Location:        "Hyderabad, TS",
				Bio:             "Specializes in joint replacement surgery, sports injuries, and arthroscopy.",
				AvailableSlots:  []string{"08:00 AM", "02:00 PM", "03:00 PM"},
			},
		},
		{
			ID:        "d6",
			Name:      "Dr. Meera Reddy",
			Email:     "meera.reddy@mediconnect.com",
			Role:      entity.RoleDoctor,
			AvatarURL: avatar("Meera+Reddy", "DB2777&color=fff"),
			DoctorProfile: &entity.DoctorProfile{
				Specialization:  "Gynecologist",
				YearsExperience: 14,
				ConsultationFee: decimal.NewFromInt(1000),
				Rating:          4.8,
				Location:        "Chennai, TN",
				Bio:             "Expert in high-risk pregnancies, infertility treatments, and laparoscopic surgeries.",
				AvailableSlots:  []string{"10:00 AM", "01:00 PM", "06:00 PM"},
			},
		},
		{
			ID:        "d7",
			Name:      "Dr. Amit Verma",
			Email:     "amit.verma@mediconnect.com",
			Role:      entity.RoleDoctor,
			AvatarURL: avatar("Amit+Verma", "059669&color=fff"),
			DoctorProfile: &entity.DoctorProfile{
				Specialization:  "General Physician",
				YearsExperience: 25,
				ConsultationFee: decimal.NewFromInt(500),
				Rating:          4.5,
				Location:        "Kolkata, WB",
				Bio:             "Family physician with extensive experience in managing diabetes, hypertension, and infectious diseases.",
				AvailableSlots:  []string{"09:00 AM", "11:00 AM", "07:00 PM"},
			},
		},
		{
			ID:        "d8",
			Name:      "Dr. Anjali Desai",
			Email:     "anjali.desai@mediconnect.com",
			Role:      entity.RoleDoctor,
			AvatarURL: avatar("Anjali+Desai", "7C3AED&color=fff"),
			DoctorProfile: &entity.DoctorProfile{
				Specialization:  "Psychiatrist",
				YearsExperience: 9,
				ConsultationFee: decimal.NewFromInt(1500),
				Rating:          4.9,
				Location:        "Mumbai, MH",
				Bio:             "Mental health advocate specializing in anxiety disorders, depression, and cognitive behavioral therapy.",
				AvailableSlots:  []string{"02:00 PM", "03:00 PM", "04:00 PM"},
			},
		},
		{
			ID:        "d9",
			Name:      "Dr. Mohammed Khan",
			Email:     "mohammed.khan@mediconnect.com",
			Role:      entity.RoleDoctor,
			AvatarURL: avatar("Mohammed+Khan", "2563EB&color=fff"),
			DoctorProfile: &entity.DoctorProfile{
				Specialization:  "ENT Specialist",
				YearsExperience: 11,
				ConsultationFee: decimal.NewFromInt(800),
				Rating:          4.6,
				Location:        "Lucknow, UP",
				Bio:             "Specialist in ear, nose, and throat disorders, sinus surgeries, and hearing loss management.",
				AvailableSlots:  []string{"10:30 AM", "12:30 PM", "05:30 PM"},
			},
		},
		{
			ID:        "d10",
			Name:      "Dr. Rohan Joshi",
			Email:     "rohan.joshi@mediconnect.com",
			Role:      entity.RoleDoctor,
			AvatarURL: avatar("Rohan+Joshi", "CA8A04&color=fff"),
			DoctorProfile: &entity.DoctorProfile{
				Specialization:  "Dentist",
				YearsExperience: 7,
				ConsultationFee: decimal.NewFromInt(400),
				Rating:          4.7,
				Location:        "Ahmedabad, GJ",
				Bio:             "Cosmetic dentist focusing on smile makeovers, implants, and root canal treatments.",
				AvailableSlots:  []string{"09:00 AM", "05:00 PM", "06:00 PM"},
			},
		},
		{
			ID:        "d11",
			Name:      "Dr. Kavita Nair",
			Email:     "kavita.nair@mediconnect.com",
			Role:      entity.RoleDoctor,
			AvatarURL: avatar("Kavita+Nair", "0891B2&color=fff"),
			DoctorProfile: &entity.DoctorProfile{
				Specialization:  "Ophthalmologist",
				YearsExperience: 16,
				ConsultationFee: decimal.NewFromInt(900),
				Rating:          4.8,
				Location:        "Kochi, KL",
				Bio:             "Eye surgeon specializing in cataract surgery, LASIK, and glaucoma management.",
				AvailableSlots:  []string{"08:30 AM", "11:00 AM", "03:30 PM"},
			},
		},
		{
			ID:        "d12",
			Name:      "Dr. Suresh Menon",
			Email:     "suresh.menon@mediconnect.com",
			Role:      entity.RoleDoctor,
			AvatarURL: avatar("Suresh+Menon", "DC2626&color=fff"),
			DoctorProfile: &entity.DoctorProfile{
				Specialization:  "Endocrinologist",
				YearsExperience: 20,
				ConsultationFee: decimal.NewFromInt(1400),
				Rating:          4.9,
				Location:        "Thiruvananthapuram, KL",
				Bio:             "Expert in diabetes management, thyroid disorders, and hormonal imbalances.",
				AvailableSlots:  []string{"10:00 AM", "12:00 PM", "02:00 PM"},
			},
		},
	}
}

// Patients returns a fresh copy of the seeded patients.
func Patients() []entity.User {
	return []entity.User{
		{ID: "p1", Name: "Rahul Khanna", Email: "rahul@gmail.com", Role: entity.RolePatient, AvatarURL: avatar("Rahul+Khanna", "random")},
		{ID: "p2", Name: "Pooja Verma", Email: "pooja@example.com", Role: entity.RolePatient, AvatarURL: avatar("Pooja+Verma", "random")},
		{ID: "p3", Name: "Amitabh Singh", Email: "amitabh@test.com", Role: entity.RolePatient, AvatarURL: avatar("Amitabh+Singh", "random")},
	}
}

// Admin returns the fixed administrator.
func Admin() entity.User {
	return entity.User{
		ID:        AdminID,
		Name:      "System Admin",
		Email:     "admin@mediconnect.com",
		Role:      entity.RoleAdmin,
		AvatarURL: avatar("System+Admin", "1e293b&color=fff"),
	}
}

// Users returns doctors, then patients, then the admin.
func Users() []entity.User {
	users := append(Doctors(), Patients()...)
	return append(users, Admin())
}

// FallbackUser is who a login resolves to when email and role match nobody.
func FallbackUser(role entity.Role) (entity.User, error) {
	switch role {
	case entity.RoleDoctor:
		return Doctors()[0], nil
	case entity.RoleAdmin:
		return Admin(), nil
	case entity.RolePatient:
		return Patients()[0], nil
	default:
		return entity.User{}, entity.ErrUnknownRole
	}
}

// Appointments is the list used while no appointments have been persisted.
func Appointments(now time.Time) []entity.Appointment {
	return []entity.Appointment{
		{
			ID:          "a1",
			PatientID:   FirstPatientID,
			PatientName: "Rahul Khanna",
			DoctorID:    FirstDoctorID,
			DoctorName:  "Dr. Aarav Patel",
			Date:        now.Format(entity.DateLayout),
			Time:        "10:00 AM",
			Status:      entity.AppointmentStatusConfirmed,
		},
	}
}
