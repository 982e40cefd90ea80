package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound: lomba/bidang tidak ditemukan di store.
	ErrNotFound = errors.New("data tidak ditemukan")

	// ErrTypeInUse: bidang masih direferensikan lomba lewat pivot,
	// penghapusan ditolak supaya tidak meninggalkan relasi yatim.
	ErrTypeInUse = errors.New("bidang masih dipakai oleh lomba, hapus relasinya dulu")
)

// StorageError: kegagalan upload/delete object storage. Upload fatal
// untuk workflow; delete hanya dilog (best-effort).
type StorageError struct {
	Op   string // "upload" | "delete"
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("storage %s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// PersistenceError: kegagalan insert/update/delete di relational store.
// Selalu fatal, tanpa retry otomatis.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
