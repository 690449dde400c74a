package users

import "github.com/JaimeStill/catalog-admin/pkg/openapi"

type spec struct {
	List   *openapi.Operation
	Find   *openapi.Operation
	Login  *openapi.Operation
	Me     *openapi.Operation
	Create *openapi.Operation
	Update *openapi.Operation
	Delete *openapi.Operation
}

var Spec = spec{
	List: &openapi.Operation{
		Summary:     "List users",
		Description: "Returns a paginated list of service accounts",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("limit", "integer", "Maximum results per page", false),
			openapi.QueryParam("offset", "integer", "Number of results to skip", false),
			openapi.QueryParam("search", "string", "Search query (matches username, email)", false),
			openapi.QueryParam("sort", "string", "Comma-separated sort fields. Prefix with - for descending", false),
			openapi.QueryParam("role", "string", "Filter by role", false),
			openapi.QueryParam("active", "boolean", "Filter by active state", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Paginated list of users", "UserPageResult"),
			401: openapi.ResponseRef("Unauthorized"),
			403: openapi.ResponseRef("Forbidden"),
		},
	},
	Find: &openapi.Operation{
		Summary:     "Get user",
		Description: "Returns a single service account",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "User UUID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("User", "User"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Login: &openapi.Operation{
		Summary:     "Log in",
		Description: "Verifies credentials and returns an access token. The token is also set as the dashboard session cookie.",
		RequestBody: openapi.RequestBodyJSON("LoginCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Token and account", "LoginResult"),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
	Me: &openapi.Operation{
		Summary:     "Current account",
		Description: "Returns the account behind the presented token",
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("User", "User"),
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
	Create: &openapi.Operation{
		Summary:     "Create user",
		Description: "Creates a service account with a hashed password",
		RequestBody: openapi.RequestBodyJSON("CreateUserCommand", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Created user", "User"),
			400: openapi.ResponseRef("BadRequest"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Update: &openapi.Operation{
		Summary:     "Update user",
		Description: "Updates account metadata and optionally rotates the password",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "User UUID"),
		},
		RequestBody: openapi.RequestBodyJSON("UpdateUserCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Updated user", "User"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Delete: &openapi.Operation{
		Summary:     "Delete user",
		Description: "Removes a service account",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "User UUID"),
		},
		Responses: map[int]*openapi.Response{
			204: {Description: "User deleted"},
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"User": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":         {Type: "string", Format: "uuid"},
				"username":   {Type: "string"},
				"email":      {Type: "string", Format: "email"},
				"role":       {Type: "string", Enum: []string{"admin", "editor", "viewer"}},
				"active":     {Type: "boolean"},
				"created_at": {Type: "string", Format: "date-time"},
				"updated_at": {Type: "string", Format: "date-time"},
			},
		},
		"LoginCommand": {
			Type:     "object",
			Required: []string{"email", "password"},
			Properties: map[string]*openapi.Schema{
				"email":    {Type: "string", Format: "email", Example: "admin@example.com"},
				"password": {Type: "string"},
			},
		},
		"LoginResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"token": {Type: "string", Description: "Bearer token for the Authorization header"},
				"user":  openapi.SchemaRef("User"),
			},
		},
		"CreateUserCommand": {
			Type:     "object",
			Required: []string{"username", "email", "password", "role"},
			Properties: map[string]*openapi.Schema{
				"username": {Type: "string", Example: "editor"},
				"email":    {Type: "string", Format: "email"},
				"password": {Type: "string"},
				"role":     {Type: "string", Enum: []string{"admin", "editor", "viewer"}},
			},
		},
		"UpdateUserCommand": {
			Type:     "object",
			Required: []string{"email", "role"},
			Properties: map[string]*openapi.Schema{
				"email":    {Type: "string", Format: "email"},
				"role":     {Type: "string", Enum: []string{"admin", "editor", "viewer"}},
				"password": {Type: "string", Description: "New password; omit to keep the current one"},
				"active":   {Type: "boolean", Description: "Omit to keep the current state"},
			},
		},
		"UserPageResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":   {Type: "array", Items: openapi.SchemaRef("User")},
				"total":  {Type: "integer"},
				"limit":  {Type: "integer"},
				"offset": {Type: "integer"},
			},
		},
	}
}
