// Package di resolves function and constructor arguments by type.
//
// Arguments come from two places, consulted in this order:
//
//  1. candidates: an ad-hoc []any of ready-made objects. The first element
//     whose dynamic type is assignable to the parameter type wins.
//  2. a ServiceSource: a type-keyed lookup such as framework/container.
//
// A parameter neither can satisfy resolves to nil. That is not an error;
// whatever receives the arguments decides what a missing one means.
//
// # Resolving parameters
//
//	args := di.ResolveParameters(c, []any{override}, []reflect.Type{
//	    reflect.TypeFor[Store](),
//	    reflect.TypeFor[*slog.Logger](),
//	})
//
//	args, err := di.ResolveFuncParameters(c, nil, handleSignup)
//
// # Creating instances
//
// Go types have no constructors to discover, so they are registered as
// plain functions returning T or (T, error):
//
//	ctors := di.NewConstructors()
//	ctors.MustRegister(NewMailer, NewMailerFromURL)
//
//	m, ok, err := di.CreateInstance[Notifier](c, nil, ctors,
//	    reflect.TypeFor[*Mailer](), nil)
//
// ok is false, with a nil error, when the concrete type does not implement
// or is not assignable to T. Without a selector the first constructor
// registered for the type is used; registration order is the only order, so
// callers with several constructors per type should pass ByParamTypes or
// ByParamsOf to pick one explicitly.
//
// Nothing is cached between calls.
package di
