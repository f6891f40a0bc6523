// Package keymutex реализует блокировки по ключу поверх фиксированного набора мьютексов.
package keymutex

import (
	"hash/fnv"
	"sync"
)

// DefaultStripes - число мьютексов по умолчанию.
const DefaultStripes = 256

// KeyMutex сериализует операции над одним ключом.
// Разные ключи могут попасть в один мьютекс, это безопасно, но снижает параллелизм.
type KeyMutex struct {
	stripes []sync.Mutex
}

// New создает KeyMutex с n мьютексами. При n <= 0 используется DefaultStripes.
func New(n int) *KeyMutex {
	if n <= 0 {
		n = DefaultStripes
	}
	return &KeyMutex{stripes: make([]sync.Mutex, n)}
}

// Lock захватывает мьютекс ключа и возвращает функцию освобождения.
func (km *KeyMutex) Lock(key string) (unlock func()) {
	mu := km.stripe(key)
	mu.Lock()
	return mu.Unlock
}

func (km *KeyMutex) stripe(key string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return &km.stripes[h.Sum32()%uint32(len(km.stripes))]
}
