package storage

import "github.com/mootimer/daemon/internal/domain"

func newTestProfile(id, name string) (*domain.Profile, error) {
	return domain.NewProfile(id, name)
}
