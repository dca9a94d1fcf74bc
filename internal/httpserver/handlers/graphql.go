package handlers

import (
	"encoding/json"
	"net/http"

	gql "github.com/graphql-go/graphql"

	"github.com/MrSnakeDoc/secdash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/secdash/internal/httpserver/respond"
	"github.com/MrSnakeDoc/secdash/internal/logger"
)

type graphqlRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// GraphQL executes a query against the dashboard schema
func GraphQL(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params graphqlRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxQueryBody)).Decode(&params); err != nil {
			respond.JSON(w, http.StatusBadRequest, map[string]interface{}{
				"errors": []map[string]interface{}{{"message": "Invalid request body"}},
			})
			return
		}

		result := gql.Do(gql.Params{
			Schema:         *d.Schema,
			RequestString:  params.Query,
			VariableValues: params.Variables,
			OperationName:  params.OperationName,
			Context:        r.Context(),
		})

		if result.HasErrors() {
			opName := params.OperationName
			if opName == "" {
				opName = "-"
			}
			d.Logger.Debug("graphql query returned errors",
				logger.String("operation", opName),
				logger.Int("errors", len(result.Errors)))
		}

		respond.JSON(w, http.StatusOK, result)
	}
}
