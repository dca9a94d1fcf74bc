package graphql

import (
	"errors"
	"fmt"

	gql "github.com/graphql-go/graphql"

	"github.com/MrSnakeDoc/secdash/internal/dashboard"
	"github.com/MrSnakeDoc/secdash/internal/domain"
	"github.com/MrSnakeDoc/secdash/internal/presentation"
)

// NewSchema builds the root schema over a dashboard service
func NewSchema(svc *dashboard.Service, ui *presentation.Config) (gql.Schema, error) {
	schema, err := gql.NewSchema(gql.SchemaConfig{
		Query: gql.NewObject(gql.ObjectConfig{
			Name:   "Query",
			Fields: QueryFields(svc, ui),
		}),
	})
	if err != nil {
		return gql.Schema{}, fmt.Errorf("failed to build graphql schema: %w", err)
	}
	return schema, nil
}

// QueryFields returns the dashboard queries to be mounted in the root schema
func QueryFields(svc *dashboard.Service, ui *presentation.Config) gql.Fields {
	return gql.Fields{
		"vulnerabilities": &gql.Field{
			Type: VulnerabilityViewType,
			Args: gql.FieldConfigArgument{
				"search":     &gql.ArgumentConfig{Type: gql.String, DefaultValue: ""},
				"type":       &gql.ArgumentConfig{Type: gql.String, DefaultValue: ""},
				"year":       &gql.ArgumentConfig{Type: gql.String, DefaultValue: ""},
				"state":      &gql.ArgumentConfig{Type: gql.String, DefaultValue: ""},
				"repository": &gql.ArgumentConfig{Type: gql.String, DefaultValue: ""},
			},
			Resolve: func(p gql.ResolveParams) (interface{}, error) {
				q := domain.QueryState{
					SearchTerm: stringArg(p, "search"),
					Selections: domain.Selections{
						Type:       stringArg(p, "type"),
						Year:       stringArg(p, "year"),
						State:      stringArg(p, "state"),
						Repository: stringArg(p, "repository"),
					},
				}
				view, err := svc.View(p.Context, q)
				if err != nil {
					return nil, err
				}
				return viewToMap(ui.RenderView(view)), nil
			},
		},
		"vulnerability": &gql.Field{
			Type: VulnerabilityType,
			Args: gql.FieldConfigArgument{
				"sha": &gql.ArgumentConfig{Type: gql.NewNonNull(gql.String)},
			},
			Resolve: func(p gql.ResolveParams) (interface{}, error) {
				rec, err := svc.Record(stringArg(p, "sha"))
				if errors.Is(err, dashboard.ErrRecordNotFound) {
					return nil, nil
				}
				if err != nil {
					return nil, err
				}
				return rowToMap(ui.RenderRecord(rec, domain.GitHubLink(rec))), nil
			},
		},
		"facets": &gql.Field{
			Type: FacetOptionsType,
			Resolve: func(_ gql.ResolveParams) (interface{}, error) {
				facets, err := svc.Facets()
				if err != nil {
					return nil, err
				}
				return facetsToMap(facets), nil
			},
		},
		"link": &gql.Field{
			Type: gql.String,
			Args: gql.FieldConfigArgument{
				"sha": &gql.ArgumentConfig{Type: gql.NewNonNull(gql.String)},
			},
			Resolve: func(p gql.ResolveParams) (interface{}, error) {
				link, ok := svc.Link(stringArg(p, "sha"))
				if !ok {
					return nil, nil
				}
				return link, nil
			},
		},
	}
}

func stringArg(p gql.ResolveParams, name string) string {
	v, _ := p.Args[name].(string)
	return v
}
