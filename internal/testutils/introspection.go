package testutils

import (
	"encoding/json"
)

// IntrospectionQuery is the query GraphQL clients like the playground send to build their schema view.
const IntrospectionQuery = `
query IntrospectionQuery {
  __schema {
    queryType { name }
    mutationType { name }
    subscriptionType { name }
    types {
      ...FullType
    }
    directives {
      name
      description
      locations
      args {
        ...InputValue
      }
    }
  }
}

fragment FullType on __Type {
  kind
  name
  description
  fields(includeDeprecated: true) {
    name
    description
    args {
      ...InputValue
    }
    type {
      ...TypeRef
    }
    isDeprecated
    deprecationReason
  }
  inputFields {
    ...InputValue
  }
  interfaces {
    ...TypeRef
  }
  enumValues(includeDeprecated: true) {
    name
    description
    isDeprecated
    deprecationReason
  }
  possibleTypes {
    ...TypeRef
  }
}

fragment InputValue on __InputValue {
  name
  description
  type { ...TypeRef }
  defaultValue
}

fragment TypeRef on __Type {
  kind
  name
  ofType {
    kind
    name
    ofType {
      kind
      name
      ofType {
        kind
        name
        ofType {
          kind
          name
          ofType {
            kind
            name
            ofType {
              kind
              name
              ofType {
                kind
                name
              }
            }
          }
        }
      }
    }
  }
}
`

// IntrospectedType is the part of an IntrospectionQuery result that clients
// need to rebuild object types. Lists are pointers so that null stays distinguishable from [].
type IntrospectedType struct {
	Kind   string `json:"kind"`
	Name   string `json:"name"`
	Fields *[]struct {
		Name string `json:"name"`
		Args *[]struct {
			Name string `json:"name"`
		} `json:"args"`
	} `json:"fields"`
}

// DecodeIntrospection returns the types of an IntrospectionQuery response by name.
func DecodeIntrospection(t TestingT, data []byte) map[string]IntrospectedType {
	t.Helper()

	var resp struct {
		Schema struct {
			QueryType struct {
				Name string `json:"name"`
			} `json:"queryType"`
			Types []IntrospectedType `json:"types"`
		} `json:"__schema"`
	}
	err := json.Unmarshal(data, &resp)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Schema.QueryType.Name == "" {
		t.Fatal("queryType is missing")
	}

	types := make(map[string]IntrospectedType, len(resp.Schema.Types))
	for _, typ := range resp.Schema.Types {
		types[typ.Name] = typ
	}
	return types
}
