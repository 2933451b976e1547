package store

import "nemo/types"

// Store persists experiment records across controller invocations.
type Store interface {
	Init(...Option) error
	Close() error

	List() (types.Configs, error)
	Get(*types.Config) error
	Create(*types.Config) error
	Update(*types.Config) error
	Delete(*types.Config) error
}
