package clickhouse

import (
	"crypto/tls"
	"crypto/x509"
	"os"

	"github.com/pkg/errors"
)

// TLSSettings locates the client certificate, key and CA bundle used for mTLS.
type TLSSettings struct {
	CertFile string `yaml:"cert_file,omitempty"`
	KeyFile  string `yaml:"key_file,omitempty"`
	CAFile   string `yaml:"ca_file,omitempty"`
}

// Enabled reports whether any TLS file is configured.
func (s TLSSettings) Enabled() bool {
	return s.CertFile != "" || s.KeyFile != "" || s.CAFile != ""
}

// GetTLSConfig creates a TLS config for connection to clickhouse over mTLS
//
// Example usage:
//
//	tls, err := GetTLSConfig(opts.TLSSettings)
//	if err != nil {
//		return err
//	}
func GetTLSConfig(settings TLSSettings) (*tls.Config, error) {
	cert, err := tls.LoadX509KeyPair(settings.CertFile, settings.KeyFile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load cert file and key file")
	}

	caCert, err := os.ReadFile(settings.CAFile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load CA file")
	}

	caCertPool := x509.NewCertPool()
	if !caCertPool.AppendCertsFromPEM(caCert) {
		return nil, errors.Errorf("no certificates found in CA file %s", settings.CAFile)
	}

	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		RootCAs:      caCertPool,
		MinVersion:   tls.VersionTLS12,
	}, nil
}
