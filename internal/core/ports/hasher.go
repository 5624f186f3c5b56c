package ports

// OutputHasher computes an advisory digest of a produced output tree.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type OutputHasher interface {
	// HashTree folds every regular file under dir into a single hex digest.
	HashTree(dir string) (string, error)
}
