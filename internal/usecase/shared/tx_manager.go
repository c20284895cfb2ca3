package shared

import "context"

// WithinResult runs fn in uow.Within and hands back the value it produced.
func WithinResult[T any](ctx context.Context, uow UnitOfWork, fn func(ctx context.Context, tx Tx) (T, error)) (T, error) {
	var result T
	err := uow.Within(ctx, func(ctx context.Context, tx Tx) error {
		v, err := fn(ctx, tx)
		if err != nil {
			return err
		}
		result = v
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
