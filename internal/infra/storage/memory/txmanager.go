package memory

import "context"

// TxManager менеджер транзакций для in-memory хранилища.
// Каждая операция репозитория атомарна сама по себе, а смена статуса
// защищена compare-and-set, поэтому fn выполняется без дополнительной блокировки
type TxManager struct{}

// NewTxManager создает менеджер транзакций
func NewTxManager() *TxManager {
	return &TxManager{}
}

// Do выполняет fn без транзакции
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
