package outbound

type AssetHandle struct {
	Path string
}

// TempAssetStorePort scopes on-disk artifacts to one composition. Handles
// never collide across concurrent jobs and Release is idempotent.
type TempAssetStorePort interface {
	Acquire(data []byte, logicalName string) (AssetHandle, error)
	Release(handle AssetHandle) error
}
