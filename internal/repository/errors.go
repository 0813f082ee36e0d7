package repository

import "errors"

var (
	// 対象が見つからない
	ErrNotFound = errors.New("not found")
	// 一意制約違反（email重複・同一ユーザーの二重レビューなど）
	ErrDuplicate = errors.New("duplicate")
	// 支払い済みの注文をもう一度支払おうとした
	ErrAlreadyPaid = errors.New("already paid")
)
