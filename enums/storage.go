package enums

const (
	StorageFile   = "file"
	StorageMemory = "memory"
	StorageRedis  = "redis"
)
