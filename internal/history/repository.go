package history

import "context"

type Repository interface {
	Insert(ctx context.Context, c *Conversion) error
	Get(ctx context.Context, id int64) (*Conversion, error)
	List(ctx context.Context, paperID, status string) ([]Conversion, error)
}
