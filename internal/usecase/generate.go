package usecase

//go:generate mockgen -source=gateway_registry_usecase.go -destination=../adapter/http/handlers/mocks/gateway_registry_mock.go -package=mocks
//go:generate mockgen -source=order_event_ledger_usecase.go -destination=../adapter/http/handlers/mocks/order_event_ledger_mock.go -package=mocks
//go:generate mockgen -source=order_usecase.go -destination=../adapter/http/handlers/mocks/order_usecase_mock.go -package=mocks
//go:generate mockgen -source=transaction_usecase.go -destination=../adapter/http/handlers/mocks/transaction_usecase_mock.go -package=mocks
