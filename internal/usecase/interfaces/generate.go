package interfaces

//go:generate mockgen -source=catalog_repository_interface.go -destination=mocks/catalog_repository_interface_mock.go -package=mock_interfaces
//go:generate mockgen -source=customer_repository_interface.go -destination=mocks/customer_repository_interface_mock.go -package=mock_interfaces
//go:generate mockgen -source=lock_manager_interface.go -destination=mocks/lock_manager_interface_mock.go -package=mock_interfaces
//go:generate mockgen -source=notifier_interface.go -destination=mocks/notifier_interface_mock.go -package=mock_interfaces
//go:generate mockgen -source=order_event_observer_interface.go -destination=mocks/order_event_observer_interface_mock.go -package=mock_interfaces
//go:generate mockgen -source=order_event_repository_interface.go -destination=mocks/order_event_repository_interface_mock.go -package=mock_interfaces
//go:generate mockgen -source=payment_gateway_interface.go -destination=mocks/payment_gateway_interface_mock.go -package=mock_interfaces
//go:generate mockgen -source=purchase_repository_interface.go -destination=mocks/purchase_repository_interface_mock.go -package=mock_interfaces
//go:generate mockgen -source=session_store_interface.go -destination=mocks/session_store_interface_mock.go -package=mock_interfaces
