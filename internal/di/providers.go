package di

import (
	"wedcms/internal/store"
	"wedcms/internal/structures"
)

func provideStore(conf *structures.Config) (*store.Store, error) {
	return store.Open(conf.Storage.DBPath)
}
