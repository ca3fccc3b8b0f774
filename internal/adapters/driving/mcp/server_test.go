package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docugen-labs/docugen/internal/core/services"
)

func TestNewServer(t *testing.T) {
	t.Run("creates server with valid ports", func(t *testing.T) {
		session := services.NewSession(&mockSheetsAPI{}, &mockDriveAPI{})
		server, err := NewServer(&Ports{Session: session})

		require.NoError(t, err)
		assert.NotNil(t, server)
	})

	t.Run("rejects nil session", func(t *testing.T) {
		_, err := NewServer(&Ports{})

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingSession)
	})

	t.Run("defaults to metadata resolver", func(t *testing.T) {
		session := services.NewSession(&mockSheetsAPI{}, &mockDriveAPI{})
		ports := &Ports{Session: session}
		_, err := NewServer(ports)

		require.NoError(t, err)
		assert.IsType(t, &MetadataResolver{}, ports.Resolver)
	})

	t.Run("keeps injected resolver", func(t *testing.T) {
		session := services.NewSession(&mockSheetsAPI{}, &mockDriveAPI{})
		resolver := &staticResolver{id: 7}
		ports := &Ports{Session: session, Resolver: resolver}
		_, err := NewServer(ports)

		require.NoError(t, err)
		assert.Same(t, resolver, ports.Resolver)
	})
}
