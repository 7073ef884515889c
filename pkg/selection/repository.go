package selection

import (
	"context"
	"encoding/json"

	"github.com/matzehuels/stc/pkg/errors"
	"github.com/matzehuels/stc/pkg/observability"
	"github.com/matzehuels/stc/pkg/storage"
)

// StorageKey is the single key under which the selection is persisted.
const StorageKey = "selectedItems"

// Repository reads and writes the selection through a storage.Store.
// It holds no state of its own.
type Repository struct {
	store storage.Store
}

// NewRepository wraps store.
func NewRepository(store storage.Store) *Repository {
	return &Repository{store: store}
}

// Load reads the persisted selection. A missing key yields an empty Set.
func (r *Repository) Load(ctx context.Context) (Set, error) {
	data, ok, err := r.store.Get(ctx, StorageKey)
	observability.Storage().OnRead(ctx, StorageKey, ok)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "load %s", StorageKey)
	}
	if !ok || len(data) == 0 {
		return Set{}, nil
	}

	var items Set
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "decode %s", StorageKey)
	}
	if items == nil {
		items = Set{}
	}
	return items.Clean(), nil
}

// Save replaces the persisted selection with items.
func (r *Repository) Save(ctx context.Context, items Set) error {
	if items == nil {
		items = Set{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode %s", StorageKey)
	}
	if err := r.store.Set(ctx, StorageKey, data); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "save %s", StorageKey)
	}
	observability.Storage().OnWrite(ctx, StorageKey, len(data))
	return nil
}

// Clear persists an empty selection.
func (r *Repository) Clear(ctx context.Context) error {
	return r.Save(ctx, Set{})
}
