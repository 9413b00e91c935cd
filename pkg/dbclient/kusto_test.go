package dbclient

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKustoOptionValidate(t *testing.T) {

	t.Run("require credentials", func(t *testing.T) {
		t.Setenv(tenantIDKey, "")
		t.Setenv(clientIDKey, "")
		t.Setenv(clientSecretKey, "")

		o := &KustoOption{}
		err := o.Validate()
		assert.ErrorIs(t, err, ErrEnvRequired, tenantIDKey)

		t.Setenv(tenantIDKey, "tenant-id")
		err = o.Validate()
		assert.ErrorIs(t, err, ErrEnvRequired, clientIDKey)
		if o.tenantID != "tenant-id" {
			t.Errorf("expect tenant id of option %s, but %s", "tenant-id", o.tenantID)
		}

		t.Setenv(clientIDKey, "client-id")
		err = o.Validate()
		assert.ErrorIs(t, err, ErrEnvRequired, clientSecretKey)
		if o.clientID != "client-id" {
			t.Errorf("expect client id of option %s, but %s", "client-id", o.clientID)
		}

		t.Setenv(clientSecretKey, "client-secret")
		err = o.Validate()
		if o.clientSecret != "client-secret" {
			t.Errorf("expect client secret of option %s, but %s", "client-secret", o.clientSecret)
		}
		assert.ErrorIs(t, err, ErrFlagRequired, "endpoint")

		o.Endpoint = "https://fake.kusto.windows.net"
		err = o.Validate()
		assert.ErrorIs(t, err, ErrFlagRequired, "database")

		o.Database = "database"
		err = o.Validate()
		assert.ErrorIs(t, err, ErrFlagRequired, "event")

		o.Event = "cover-event"
		err = o.Validate()
		assert.NoError(t, err)

		o.CustomColumns = []string{": :"}
		err = o.Validate()
		assert.ErrorIs(t, err, ErrFormatCustomColumn)

		o.CustomColumns = []string{"nocolumn"}
		err = o.Validate()
		assert.ErrorIs(t, err, ErrFormatCustomColumn)

		o.CustomColumns = []string{"branch:string:refs/heads/main", "runUrl:string:https://example.com/run/1"}
		err = o.Validate()
		require.NoError(t, err)
		assert.Equal(t, "refs/heads/main", o.extraData["branch"])
		assert.Equal(t, "https://example.com/run/1", o.extraData["runUrl"])
		require.Len(t, o.extraMappings, 2)
		assert.Equal(t, "$.Extra.branch", o.extraMappings[0].Properties.Path)

		// validating twice does not duplicate mappings
		require.NoError(t, o.Validate())
		assert.Len(t, o.extraMappings, 2)
	})
}

func TestBasicMappings(t *testing.T) {
	data, err := json.Marshal(&Data{Scope: TargetScope, Target: "AppTarget", CoveredLines: 1, ExecutableLines: 2, Coverage: 50})
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &fields))

	// every mapped column must exist in the serialized data
	for _, m := range basicMappings {
		assert.Contains(t, fields, m.Column)
		assert.Equal(t, "$."+m.Column, m.Properties.Path)
	}
}
