package cli

type Params struct {
	Debug        bool   `json:"debug"`
	DiscordToken string `json:"-"`
	HTTPAddress  string `json:"http_address"`
	EnablePprof  bool   `json:"enable_pprof"`

	// NATS transport is optional; empty address disables it
	NATSAddress       []string `json:"nats_address"`
	NATSSubject       string   `json:"nats_subject"`
	NATSUseTLS        bool     `json:"nats_use_tls"`
	NATSTLSCaCert     string   `json:"nats_tls_ca_cert"`
	NATSTLSClientCert string   `json:"nats_tls_client_cert"`
	NATSTLSClientKey  string   `json:"nats_tls_client_key"`
	NATSTLSSkipVerify bool     `json:"nats_tls_skip_verify"`
}
