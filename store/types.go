package store

import "github.com/safeharbor/harbor"

// References for all storage types, for shorter names in this package.

type (
	ReadOnlyKVStore  = harbor.ReadOnlyKVStore
	SetDeleter       = harbor.SetDeleter
	KVStore          = harbor.KVStore
	Batch            = harbor.Batch
	Iterator         = harbor.Iterator
	CacheableKVStore = harbor.CacheableKVStore
	KVCacheWrap      = harbor.KVCacheWrap
	CommitKVStore    = harbor.CommitKVStore
	CommitID         = harbor.CommitID
	Model            = harbor.Model
)
