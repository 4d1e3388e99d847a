package controllers

import (
	"fmt"
	"net/http"

	gql "github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/plantnet/app/models"
	"github.com/shashiranjanraj/plantnet/app/repositories"
	"github.com/shashiranjanraj/plantnet/pkg/collection"
	"github.com/shashiranjanraj/plantnet/pkg/graphql"
)

// NewCatalogueHandler builds the read-only GraphQL endpoint over the plant
// catalogue. Two queries: plants (optionally filtered by category) and
// plant(id).
func NewCatalogueHandler(plants *repositories.PlantRepository) (http.HandlerFunc, error) {
	sellerType := gql.NewObject(gql.ObjectConfig{
		Name: "Seller",
		Fields: gql.Fields{
			"email": &gql.Field{Type: gql.String},
			"name":  &gql.Field{Type: gql.String},
		},
	})

	plantType := gql.NewObject(gql.ObjectConfig{
		Name: "Plant",
		Fields: gql.Fields{
			"id": &gql.Field{
				Type: gql.String,
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					plant, ok := p.Source.(models.Plant)
					if !ok {
						return nil, fmt.Errorf("unexpected source %T", p.Source)
					}
					return plant.ID.Hex(), nil
				},
			},
			"name":        &gql.Field{Type: gql.String},
			"category":    &gql.Field{Type: gql.String},
			"description": &gql.Field{Type: gql.String},
			"price":       &gql.Field{Type: gql.Float},
			"quantity":    &gql.Field{Type: gql.Int},
			"image":       &gql.Field{Type: gql.String},
			"seller": &gql.Field{
				Type: sellerType,
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					plant, ok := p.Source.(models.Plant)
					if !ok {
						return nil, fmt.Errorf("unexpected source %T", p.Source)
					}
					return plant.Seller, nil
				},
			},
		},
	})

	rootQuery := gql.NewObject(gql.ObjectConfig{
		Name: "Query",
		Fields: gql.Fields{
			"plants": &gql.Field{
				Type: gql.NewList(plantType),
				Args: gql.FieldConfigArgument{
					"category": &gql.ArgumentConfig{Type: gql.String},
				},
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					all, err := plants.All(p.Context)
					if err != nil {
						return nil, err
					}
					category, _ := p.Args["category"].(string)
					if category == "" {
						return all, nil
					}
					return collection.Filter(all, func(plant models.Plant) bool {
						return plant.Category == category
					}), nil
				},
			},
			"plant": &gql.Field{
				Type: plantType,
				Args: gql.FieldConfigArgument{
					"id": &gql.ArgumentConfig{Type: gql.NewNonNull(gql.String)},
				},
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)
					return plants.FindByID(p.Context, id)
				},
			},
		},
	})

	schema, err := graphql.NewSchema(rootQuery)
	if err != nil {
		return nil, fmt.Errorf("catalogue schema: %w", err)
	}

	return graphql.Handler(schema), nil
}
