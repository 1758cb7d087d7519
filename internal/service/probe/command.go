package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	goversion "github.com/hashicorp/go-version"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	api "github.com/isaac-server/isaac/internal/api/grpc/isaac"
	"github.com/isaac-server/isaac/internal/config"
	domain "github.com/isaac-server/isaac/internal/domain/handshake"
	"github.com/isaac-server/isaac/internal/logger"
	"github.com/isaac-server/isaac/internal/service/common"
	"github.com/isaac-server/isaac/internal/version"
)

// Options controls a single probe run.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// ServerAddress provides an optional gRPC server address override.
	ServerAddress string
	// JSON switches the report to protobuf JSON.
	JSON bool
	// Out receives the report. Defaults to os.Stdout.
	Out io.Writer
}

var (
	// ErrNotServing is returned when the health service reports the version service down.
	ErrNotServing = errors.New("server is not serving")
	// ErrIncompatibleProtocol is returned when the server rejects our protocol version.
	ErrIncompatibleProtocol = errors.New("incompatible protocol version")
	// ErrServerTooOld is returned when the server is older than min_server_version.
	ErrServerTooOld = errors.New("server version is too old")
)

// Report is the outcome of a probe.
type Report struct {
	// Info describes the server.
	Info *domain.Info
	// ClientProtocol is the protocol version we offered.
	ClientProtocol version.Proto
	// Accepted reports whether the server accepted our protocol.
	Accepted bool
}

// Run probes the server and writes a report. The report is written even when
// the server turns out to be incompatible, in which case an error is returned too.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "isaac-probe")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	serverAddress := cfg.ServerAddress
	if opts.ServerAddress != "" {
		serverAddress = opts.ServerAddress
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	client, err := common.Dial(ctx, serverAddress, common.WithCallTimeout(cfg.Timeout))
	if err != nil {
		return fmt.Errorf("dial server: %w", err)
	}

	defer func() {
		_ = client.Close()
	}()

	logger.DebugKV(ctx, "Probing server", "server_address", serverAddress)

	report, err := probe(ctx, client)
	if err != nil {
		return err
	}

	if err = writeReport(out, report, opts.JSON); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if !report.Accepted {
		return fmt.Errorf("%w: server speaks %s, we speak %s",
			ErrIncompatibleProtocol, report.Info.Protocol, report.ClientProtocol)
	}

	return checkMinimum(report.Info.Server, cfg.MinServerVersion)
}

// probe runs the health check, the handshake and the version query.
func probe(ctx context.Context, client *common.Client) (*Report, error) {
	serving, err := client.Serving(ctx)
	if err != nil {
		return nil, err
	}

	if !serving {
		return nil, ErrNotServing
	}

	peer := &domain.Peer{Protocol: version.Protocol()}

	actor, err := common.DetectActor()
	if err != nil {
		logger.WarnKV(ctx, "Unable to detect actor, handshaking anonymously", "error", err)
	} else {
		peer.Actor = actor
	}

	negotiation, err := client.Handshake(ctx, peer)
	if err != nil {
		return nil, err
	}

	info, err := client.GetVersion(ctx)
	if err != nil {
		return nil, err
	}

	return &Report{
		Info:           info,
		ClientProtocol: peer.Protocol,
		Accepted:       negotiation.Accepted,
	}, nil
}

// checkMinimum compares the server release against the configured minimum.
func checkMinimum(server version.SemVer, minimum string) error {
	if minimum == "" {
		return nil
	}

	required, err := goversion.NewVersion(minimum)
	if err != nil {
		return fmt.Errorf("parse minimum server version: %w", err)
	}

	actual, err := goversion.NewVersion(server.String())
	if err != nil {
		return fmt.Errorf("parse server version: %w", err)
	}

	if actual.LessThan(required) {
		return fmt.Errorf("%w: %s < %s", ErrServerTooOld, actual, required)
	}

	return nil
}

// writeReport prints the report as text or protobuf JSON.
func writeReport(w io.Writer, r *Report, asJSON bool) error {
	if !asJSON {
		_, err := fmt.Fprintf(w,
			"server version: %s\nserver protocol: %s\nclient protocol: %s\naccepted: %t\ncommit: %s\nbuilt at: %s\n",
			r.Info.Server, r.Info.Protocol, r.ClientProtocol, r.Accepted, r.Info.Commit, r.Info.BuildTime)

		return err
	}

	s := api.InfoToProto(r.Info)
	s.Fields[api.FieldAccepted] = structpb.NewBoolValue(r.Accepted)
	s.Fields["client_protocol_version"] = structpb.NewStringValue(r.ClientProtocol.String())

	data, err := protojson.MarshalOptions{Multiline: true}.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}
