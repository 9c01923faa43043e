package telemetry

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"errors"
	"fmt"
)

// getTLSConfig builds the client TLS configuration for the trace exporter
// from base64-encoded PEM CA certificates.
func getTLSConfig(caCertsBase64 string) (*tls.Config, error) {
	caCertsBytes, err := base64.StdEncoding.DecodeString(caCertsBase64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode CA certificates: %w", err)
	}

	caCertPool := x509.NewCertPool()
	if ok := caCertPool.AppendCertsFromPEM(caCertsBytes); !ok {
		return nil, errors.New("failed to add CA certificates to CA cert pool")
	}

	return &tls.Config{
		RootCAs: caCertPool,
	}, nil
}
