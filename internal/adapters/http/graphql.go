package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/samirrijal/meetpoint/internal/core/domain"
	"github.com/samirrijal/meetpoint/internal/core/ranking"
)

// buildSchema creates the GraphQL schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	placeType := graphql.NewObject(graphql.ObjectConfig{
		Name: "ResolvedPlace",
		Fields: graphql.Fields{
			"input": &graphql.Field{Type: graphql.String},
			"lat":   &graphql.Field{Type: graphql.Float},
			"lon":   &graphql.Field{Type: graphql.Float},
		},
	})

	reverseType := graphql.NewObject(graphql.ObjectConfig{
		Name: "ReverseInfo",
		Fields: graphql.Fields{
			"locality":   &graphql.Field{Type: graphql.String},
			"country":    &graphql.Field{Type: graphql.String},
			"postalCode": &graphql.Field{Type: graphql.String},
		},
	})

	midpointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Midpoint",
		Fields: graphql.Fields{
			"lat":     &graphql.Field{Type: graphql.Float},
			"lon":     &graphql.Field{Type: graphql.Float},
			"reverse": &graphql.Field{Type: reverseType},
		},
	})

	distancesType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Distances",
		Fields: graphql.Fields{
			"aToM": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(domain.Distances).AToM, nil
				},
			},
			"bToM": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(domain.Distances).BToM, nil
				},
			},
			"cToM": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(domain.Distances).CToM, nil
				},
			},
		},
	})

	resultType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Result",
		Fields: graphql.Fields{
			"id": &graphql.Field{Type: graphql.String},
			"cityA": &graphql.Field{
				Type: placeType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(domain.ResultRecord).CityA, nil
				},
			},
			"cityB": &graphql.Field{
				Type: placeType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(domain.ResultRecord).CityB, nil
				},
			},
			"cityC": &graphql.Field{
				Type: placeType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(domain.ResultRecord).CityC, nil
				},
			},
			"midpoint": &graphql.Field{
				Type: midpointType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(domain.ResultRecord).Midpoint, nil
				},
			},
			"distancesKm": &graphql.Field{
				Type: distancesType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(domain.ResultRecord).DistancesKm, nil
				},
			},
			"createdAt": &graphql.Field{Type: graphql.DateTime},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"results": &graphql.Field{
				Type:        graphql.NewList(resultType),
				Description: "Past midpoint queries in arrival order, optionally sorted by midpoint locality",
				Args: graphql.FieldConfigArgument{
					"sort":  &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
					"limit": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 200},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					sort := p.Args["sort"].(string)
					limit := p.Args["limit"].(int)
					if sort == "" {
						return deps.History.List(p.Context, limit)
					}
					return deps.History.Ranked(p.Context, limit, ranking.ParseMode(sort))
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"computeMidpoint": &graphql.Field{
				Type:        resultType,
				Description: "Geocode three place names and compute their midpoint",
				Args: graphql.FieldConfigArgument{
					"cityA": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"cityB": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"cityC": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					rec, err := deps.Midpoint.Compute(p.Context,
						p.Args["cityA"].(string),
						p.Args["cityB"].(string),
						p.Args["cityC"].(string),
					)
					if err != nil {
						return nil, err
					}
					return *rec, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.UserContext(),
		})

		return c.JSON(result)
	}
}
