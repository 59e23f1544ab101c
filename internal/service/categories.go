package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Shivanand-hulikatti/venue-booking/internal/model"
)

const categoriesKey = "categories"

// DefaultCategories seed the list the first time it is read.
var DefaultCategories = []string{"taller", "exposición", "concierto", "teatro", "danza", "cine"}

// SettingsStore stores JSON documents by key.
type SettingsStore interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	Get(ctx context.Context, key string) ([]byte, bool, error)
	GetForUpdate(ctx context.Context, key string) ([]byte, bool, error)
	Seed(ctx context.Context, key string, value []byte) error
	Put(ctx context.Context, key string, value []byte) error
}

// CategoryService manages the server-owned list of event categories.
type CategoryService struct {
	settings SettingsStore
}

// NewCategoryService constructs a CategoryService.
func NewCategoryService(settings SettingsStore) *CategoryService {
	return &CategoryService{settings: settings}
}

// ListCategories returns the categories, seeding the defaults when the list
// has never been stored.
func (s *CategoryService) ListCategories(ctx context.Context) ([]string, error) {
	raw, ok, err := s.settings.Get(ctx, categoriesKey)
	if err != nil {
		return nil, err
	}
	if ok {
		return decodeCategories(raw)
	}
	if err := s.seed(ctx); err != nil {
		return nil, err
	}
	raw, _, err = s.settings.Get(ctx, categoriesKey)
	if err != nil {
		return nil, err
	}
	return decodeCategories(raw)
}

// AddCategory appends name to the list. Names compare case-insensitively.
func (s *CategoryService) AddCategory(ctx context.Context, req model.CategoryRequest) ([]string, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	return s.mutate(ctx, func(list []string) ([]string, error) {
		if indexOf(list, req.Name) >= 0 {
			return nil, model.ErrCategoryExists
		}
		return append(list, req.Name), nil
	})
}

// RemoveCategory deletes name from the list.
func (s *CategoryService) RemoveCategory(ctx context.Context, name string) ([]string, error) {
	name = strings.TrimSpace(name)
	if err := required("name", name); err != nil {
		return nil, err
	}
	return s.mutate(ctx, func(list []string) ([]string, error) {
		i := indexOf(list, name)
		if i < 0 {
			return nil, model.ErrCategoryNotFound
		}
		return append(list[:i], list[i+1:]...), nil
	})
}

// mutate runs fn on the stored list with its row locked.
func (s *CategoryService) mutate(ctx context.Context, fn func([]string) ([]string, error)) ([]string, error) {
	var out []string
	err := s.settings.WithTx(ctx, func(ctx context.Context) error {
		if err := s.seed(ctx); err != nil {
			return err
		}
		raw, _, err := s.settings.GetForUpdate(ctx, categoriesKey)
		if err != nil {
			return err
		}
		list, err := decodeCategories(raw)
		if err != nil {
			return err
		}
		next, err := fn(list)
		if err != nil {
			return err
		}
		data, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("encode categories: %w", err)
		}
		if err := s.settings.Put(ctx, categoriesKey, data); err != nil {
			return err
		}
		out = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *CategoryService) seed(ctx context.Context) error {
	data, err := json.Marshal(DefaultCategories)
	if err != nil {
		return fmt.Errorf("encode categories: %w", err)
	}
	return s.settings.Seed(ctx, categoriesKey, data)
}

func decodeCategories(raw []byte) ([]string, error) {
	list := []string{}
	if len(raw) == 0 {
		return list, nil
	}
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	if list == nil {
		list = []string{}
	}
	return list, nil
}

func indexOf(list []string, name string) int {
	for i, c := range list {
		if strings.EqualFold(c, name) {
			return i
		}
	}
	return -1
}
