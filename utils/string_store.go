package utils

import "sync"

var stringStoreInstance *stringStoreImpl
var stringStoreInitializer sync.Once

// StringStore deduplicates heavily repeated strings (tag labels mostly).
// Tag pointers from here can be compared and stored without copying the
// label for every token.
type StringStore interface {
	GetPointer(s string) *string
}

type stringStoreImpl struct {
	store sync.Map //map[string] *string
}

func (stringStore *stringStoreImpl) GetPointer(s string) *string {
	ptr, _ := stringStore.store.LoadOrStore(s, &s)
	return ptr.(*string)
}

func GlobalStringStore() StringStore {
	stringStoreInitializer.Do(func() {
		stringStoreInstance = &stringStoreImpl{}
	})
	return stringStoreInstance
}
