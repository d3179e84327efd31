package cascade

import (
	"context"

	"github.com/goliatone/go-orderform/pkg/model"
	"github.com/goliatone/go-orderform/pkg/remote"
	"github.com/goliatone/go-orderform/pkg/selectctl"
)

// Fetchers supplies one fetch function per level. Items should put the
// []model.ItemOption detail in Page.Detail so item selection can fill the
// pricing fields.
type Fetchers struct {
	Countries selectctl.FetchFunc
	Harbors   selectctl.FetchFunc
	Items     selectctl.FetchFunc
}

// FromClient binds the three levels to a remote client.
func FromClient(client *remote.Client) Fetchers {
	return Fetchers{
		Countries: func(ctx context.Context, query, _ string) (selectctl.Page, error) {
			opts, err := client.Countries(ctx, query)
			if err != nil {
				return selectctl.Page{}, err
			}
			return selectctl.Page{Options: opts}, nil
		},
		Harbors: func(ctx context.Context, query, scope string) (selectctl.Page, error) {
			opts, err := client.Harbors(ctx, query, scope)
			if err != nil {
				return selectctl.Page{}, err
			}
			return selectctl.Page{Options: opts}, nil
		},
		Items: func(ctx context.Context, query, scope string) (selectctl.Page, error) {
			items, err := client.Items(ctx, query, scope)
			if err != nil {
				return selectctl.Page{}, err
			}
			return selectctl.Page{Options: remote.ItemOptions(items), Detail: items}, nil
		},
	}
}

func (f Fetchers) forLevel(level model.Level) selectctl.FetchFunc {
	switch level {
	case model.LevelCountry:
		return f.Countries
	case model.LevelHarbor:
		return f.Harbors
	default:
		return f.Items
	}
}
