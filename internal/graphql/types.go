// Package graphql exposes the dashboard as a GraphQL schema.
package graphql

import (
	gql "github.com/graphql-go/graphql"
)

// VulnerabilityType is one rendered record
var VulnerabilityType = gql.NewObject(gql.ObjectConfig{
	Name: "Vulnerability",
	Fields: gql.Fields{
		"type":         &gql.Field{Type: gql.String},
		"type_label":   &gql.Field{Type: gql.String},
		"repository":   &gql.Field{Type: gql.String},
		"year":         &gql.Field{Type: gql.Int},
		"summary":      &gql.Field{Type: gql.String},
		"title":        &gql.Field{Type: gql.String},
		"message":      &gql.Field{Type: gql.String},
		"author":       &gql.Field{Type: gql.String},
		"file_path":    &gql.Field{Type: gql.String},
		"sha":          &gql.Field{Type: gql.String},
		"sha_label":    &gql.Field{Type: gql.String},
		"pr_number":    &gql.Field{Type: gql.Int},
		"pr_id":        &gql.Field{Type: gql.Int},
		"state":        &gql.Field{Type: gql.String},
		"state_label":  &gql.Field{Type: gql.String},
		"state_style":  &gql.Field{Type: gql.String},
		"link":         &gql.Field{Type: gql.String},
		"link_tooltip": &gql.Field{Type: gql.String},
	},
})

// FacetOptionsType lists the distinct values per facet
var FacetOptionsType = gql.NewObject(gql.ObjectConfig{
	Name: "FacetOptions",
	Fields: gql.Fields{
		"types":        &gql.Field{Type: gql.NewList(gql.String)},
		"years":        &gql.Field{Type: gql.NewList(gql.Int)},
		"states":       &gql.Field{Type: gql.NewList(gql.String)},
		"repositories": &gql.Field{Type: gql.NewList(gql.String)},
	},
})

// QueryStateType echoes the state a view was computed from
var QueryStateType = gql.NewObject(gql.ObjectConfig{
	Name: "QueryState",
	Fields: gql.Fields{
		"search_term": &gql.Field{Type: gql.String},
		"type":        &gql.Field{Type: gql.String},
		"year":        &gql.Field{Type: gql.String},
		"state":       &gql.Field{Type: gql.String},
		"repository":  &gql.Field{Type: gql.String},
	},
})

var EmptyStateType = gql.NewObject(gql.ObjectConfig{
	Name: "EmptyState",
	Fields: gql.Fields{
		"title":       &gql.Field{Type: gql.String},
		"description": &gql.Field{Type: gql.String},
	},
})

// VulnerabilityViewType is a filtered view
var VulnerabilityViewType = gql.NewObject(gql.ObjectConfig{
	Name: "VulnerabilityView",
	Fields: gql.Fields{
		"query":        &gql.Field{Type: QueryStateType},
		"count":        &gql.Field{Type: gql.Int},
		"total":        &gql.Field{Type: gql.Int},
		"results_text": &gql.Field{Type: gql.String},
		"empty":        &gql.Field{Type: gql.Boolean},
		"filtered":     &gql.Field{Type: gql.Boolean},
		"empty_state":  &gql.Field{Type: EmptyStateType},
		"results":      &gql.Field{Type: gql.NewList(VulnerabilityType)},
		"facets":       &gql.Field{Type: FacetOptionsType},
	},
})
