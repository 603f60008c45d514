// Package di provides a type-indexed service registry.
//
// A Registry maps a type key (reflect.Type) to exactly one instance. Values
// are stored with Register, which checks that the value is assignable to
// the key, or with RegisterForced, which trusts the caller. GetOrRegister
// resolves an existing instance or builds one from a contract.Factory.
//
// Every committed mutation publishes a fresh immutable View; a View never
// reflects a half-applied change. The registry itself takes no locks:
// guard it externally when mutating from several goroutines.
//
// # Registration
//
//	reg := di.NewRegistry()
//	err := di.Register[Logger](reg, consoleLogger)
//
// # Resolution
//
//	log, ok := di.Get[Logger](reg)
//	cache, err := di.GetOrRegister[*Cache](reg, contract.FactoryFunc[*Cache](NewCache))
package di
