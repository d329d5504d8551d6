package repository

import (
	"context"
	"sync"

	"mediconnect/internal/domain/entity"
	domainRepo "mediconnect/internal/domain/repository"
)

// userRepository is the in-memory directory roster. Order is insertion order.
type userRepository struct {
	mu    sync.RWMutex
	users []entity.User
}

func NewUserRepository(seed []entity.User) domainRepo.UserRepository {
	users := make([]entity.User, 0, len(seed))
	for _, u := range seed {
		users = append(users, u.Clone())
	}
	return &userRepository{users: users}
}

func (r *userRepository) indexOf(id string) int {
	for i := range r.users {
		if r.users[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(user.ID) >= 0 {
		return domainRepo.ErrDuplicateUserID
	}
	r.users = append(r.users, user.Clone())
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(id); i >= 0 {
		user := r.users[i].Clone()
		return &user, nil
	}
	return nil, nil
}

func (r *userRepository) FindByEmailAndRole(ctx context.Context, email string, role entity.Role) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.users {
		if r.users[i].Email == email && r.users[i].Role == role {
			user := r.users[i].Clone()
			return &user, nil
		}
	}
	return nil, nil
}

func (r *userRepository) FindAll(ctx context.Context) ([]entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]entity.User, len(r.users))
	for i := range r.users {
		users[i] = r.users[i].Clone()
	}
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) (*entity.User, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(user.ID)
	if i < 0 {
		unchanged := user.Clone()
		return &unchanged, false, nil
	}
	r.users[i] = r.users[i].Merge(*user)
	merged := r.users[i].Clone()
	return &merged, true, nil
}

func (r *userRepository) Delete(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return false, nil
	}
	r.users = append(r.users[:i], r.users[i+1:]...)
	return true, nil
}
