package storage

import "os"

func CleanDB(path string) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return
	}

	os.RemoveAll(path)
}

func NewTestMemoryLevelDBBackend() (st *LevelDBBackend, err error) {
	st = &LevelDBBackend{}
	if err = st.Init(&Config{Scheme: "memory"}); err != nil {
		return
	}

	return
}

func MustNewTestMemoryLevelDBBackend() *LevelDBBackend {
	st, err := NewTestMemoryLevelDBBackend()
	if err != nil {
		panic(err)
	}
	return st
}
