package store

import "nemo/types"

var DefaultStore Store = NewBoltDB()

func Init(opts ...Option) error {
	return DefaultStore.Init(opts...)
}

func Close() error {
	return DefaultStore.Close()
}

func List() (types.Configs, error) {
	return DefaultStore.List()
}

func Get(config *types.Config) error {
	return DefaultStore.Get(config)
}

func Create(config *types.Config) error {
	return DefaultStore.Create(config)
}

func Update(config *types.Config) error {
	return DefaultStore.Update(config)
}

func Delete(config *types.Config) error {
	return DefaultStore.Delete(config)
}
