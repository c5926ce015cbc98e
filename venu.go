package venu

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/viant/afs"
	"github.com/viant/venu/client"
	"github.com/viant/venu/codec"
	"github.com/viant/venu/flow"
	"github.com/viant/venu/logger"
	"github.com/viant/venu/transport"
	"github.com/viant/venu/transport/conn"
	"github.com/viant/venu/transport/mem"
	"go.uber.org/zap"
)

// ClientOptions defines options for configuring a terminal service client.
type ClientOptions struct {
	Timeout        time.Duration   `yaml:"timeout,omitempty" json:"timeout,omitempty" mapstructure:"timeout"`
	ConnectTimeout time.Duration   `yaml:"connectTimeout,omitempty" json:"connectTimeout,omitempty" mapstructure:"connect_timeout"`
	RequestTimeout time.Duration   `yaml:"requestTimeout,omitempty" json:"requestTimeout,omitempty" mapstructure:"request_timeout"`
	FlowTimeout    time.Duration   `yaml:"flowTimeout,omitempty" json:"flowTimeout,omitempty" mapstructure:"flow_timeout"`
	Codec          string          `yaml:"codec,omitempty" json:"codec,omitempty" mapstructure:"codec"`
	Transport      ClientTransport `yaml:"transport,omitempty" json:"transport,omitempty" mapstructure:"transport"`
	Flow           ClientFlow      `yaml:"flow,omitempty" json:"flow,omitempty" mapstructure:"flow"`
	Log            logger.Config   `yaml:"log,omitempty" json:"log,omitempty" mapstructure:"log"`

	// Handler answers requests when Transport.Type is mem.
	Handler transport.Handler `yaml:"-" json:"-" mapstructure:"-"`
	// Launcher overrides the command launcher built from Flow.
	Launcher flow.Launcher `yaml:"-" json:"-" mapstructure:"-"`
}

// ClientTransport defines how the terminal service is reached.
type ClientTransport struct {
	Type    string `yaml:"type" json:"type" mapstructure:"type"`
	Network string `yaml:"network,omitempty" json:"network,omitempty" mapstructure:"network"`
	Address string `yaml:"address,omitempty" json:"address,omitempty" mapstructure:"address"`
	Codec   string `yaml:"codec,omitempty" json:"codec,omitempty" mapstructure:"codec"`
}

// ClientFlow defines how flows are presented on the host.
type ClientFlow struct {
	Command         string `yaml:"command,omitempty" json:"command,omitempty" mapstructure:"command"`
	Detached        bool   `yaml:"detached,omitempty" json:"detached,omitempty" mapstructure:"detached"`
	CallbackAddress string `yaml:"callbackAddress,omitempty" json:"callbackAddress,omitempty" mapstructure:"callback_address"`
}

const (
	TransportMem  = "mem"
	TransportConn = "conn"
)

// DefaultOptions returns options with 45 second timeouts reaching the service over a unix socket.
func DefaultOptions() *ClientOptions {
	return &ClientOptions{
		Timeout: 45 * time.Second,
		Codec:   "json",
		Transport: ClientTransport{
			Type:    TransportConn,
			Network: "unix",
			Address: "/run/venu/terminal.sock",
			Codec:   "cbor",
		},
	}
}

// Init fills unset timeouts from Timeout.
func (o *ClientOptions) Init() {
	if o.Timeout == 0 {
		o.Timeout = 45 * time.Second
	}
	if o.ConnectTimeout == 0 {
		o.ConnectTimeout = o.Timeout
	}
	if o.RequestTimeout == 0 {
		o.RequestTimeout = o.Timeout
	}
	if o.FlowTimeout == 0 {
		o.FlowTimeout = o.Timeout
	}
	if o.Codec == "" {
		o.Codec = "json"
	}
	if o.Transport.Codec == "" {
		o.Transport.Codec = "cbor"
	}
}

// LoadOptions loads options from a yaml or json document at URL; VENU_ prefixed
// environment variables override loaded values.
func LoadOptions(ctx context.Context, URL string) (*ClientOptions, error) {
	ret := DefaultOptions()
	v := viper.New()
	v.SetEnvPrefix("VENU")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	v.SetDefault("timeout", ret.Timeout)
	v.SetDefault("connect_timeout", ret.ConnectTimeout)
	v.SetDefault("request_timeout", ret.RequestTimeout)
	v.SetDefault("flow_timeout", ret.FlowTimeout)
	v.SetDefault("codec", ret.Codec)
	v.SetDefault("transport.type", ret.Transport.Type)
	v.SetDefault("transport.network", ret.Transport.Network)
	v.SetDefault("transport.address", ret.Transport.Address)
	v.SetDefault("transport.codec", ret.Transport.Codec)
	v.SetDefault("flow.command", "")
	v.SetDefault("flow.detached", ret.Flow.Detached)
	v.SetDefault("flow.callback_address", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", ret.Log.Format)
	v.SetDefault("log.outputs", []string{})
	v.SetDefault("log.development", ret.Log.Development)
	v.SetDefault("log.rotation.enable", ret.Log.Rotation.Enable)
	v.SetDefault("log.rotation.max_size_mb", ret.Log.Rotation.MaxSizeMB)
	v.SetDefault("log.rotation.max_backups", ret.Log.Rotation.MaxBackups)
	v.SetDefault("log.rotation.max_age_days", ret.Log.Rotation.MaxAgeDays)
	v.SetDefault("log.rotation.compress", ret.Log.Rotation.Compress)

	if URL != "" {
		data, err := afs.New().DownloadWithURL(ctx, URL)
		if err != nil {
			return nil, fmt.Errorf("failed to load options %v: %w", URL, err)
		}
		configType := strings.TrimPrefix(path.Ext(URL), ".")
		if configType == "yml" || configType == "" {
			configType = "yaml"
		}
		v.SetConfigType(configType)
		if err = v.ReadConfig(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("failed to parse options %v: %w", URL, err)
		}
	}
	if err := v.Unmarshal(ret); err != nil {
		return nil, fmt.Errorf("failed to decode options: %w", err)
	}
	return ret, nil
}

// NewClient creates a terminal service client configured via ClientOptions.
func NewClient(options *ClientOptions) (*client.Client, error) {
	options.Init()
	log, err := logger.New(&options.Log)
	if err != nil {
		return nil, err
	}
	registry := codec.NewRegistry()
	payloadCodec, err := lookupCodec(registry, options.Codec)
	if err != nil {
		return nil, err
	}
	binder, err := options.binder(registry, log)
	if err != nil {
		return nil, err
	}
	return client.New(binder, options.launcher(log),
		client.WithLogger(log),
		client.WithCodec(payloadCodec),
		client.WithConnectTimeout(options.ConnectTimeout),
		client.WithRequestTimeout(options.RequestTimeout),
		client.WithFlowTimeout(options.FlowTimeout),
	), nil
}

func (o *ClientOptions) binder(registry *codec.Registry, log *zap.Logger) (transport.Binder, error) {
	switch o.Transport.Type {
	case TransportMem:
		if o.Handler == nil {
			return nil, fmt.Errorf("handler is required for mem transport")
		}
		return mem.New(o.Handler), nil
	case TransportConn, "":
		if o.Transport.Address == "" {
			return nil, fmt.Errorf("address is required for conn transport")
		}
		frameCodec, err := lookupCodec(registry, o.Transport.Codec)
		if err != nil {
			return nil, err
		}
		network := o.Transport.Network
		if network == "" {
			network = "unix"
		}
		return conn.New(network, o.Transport.Address, conn.WithCodec(frameCodec), conn.WithLogger(log)), nil
	}
	return nil, fmt.Errorf("unsupported transport type: %v", o.Transport.Type)
}

func (o *ClientOptions) launcher(log *zap.Logger) flow.Launcher {
	if o.Launcher != nil {
		return o.Launcher
	}
	if o.Flow.Command == "" {
		return flow.Cancelled()
	}
	opts := []flow.CommandOption{flow.WithCommandLogger(log)}
	if o.Flow.Detached {
		opts = append(opts, flow.WithDetached())
	}
	return flow.NewCommandLauncher(o.Flow.Command, opts...)
}

func lookupCodec(registry *codec.Registry, name string) (codec.Codec, error) {
	contentType := name
	if !strings.Contains(name, "/") {
		contentType = "application/" + name
	}
	if ret := registry.Get(contentType); ret != nil {
		return ret, nil
	}
	return nil, fmt.Errorf("unsupported codec: %v", name)
}
