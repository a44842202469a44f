package booking

import "github.com/mrgoksal/Chilliwili/pkg/txmanager"

// DBExecutor интерфейс для выполнения запросов: *sql.DB или *sql.Tx
type DBExecutor = txmanager.Executor
