package server

import (
	"context"
	"fmt"

	"gioui.org/f32"
	"github.com/go-viper/mapstructure/v2"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mj1618/desktop-dnd/internal/model"
	"github.com/mj1618/desktop-dnd/internal/output"
	"github.com/mj1618/desktop-dnd/internal/platform/script"
	"github.com/mj1618/desktop-dnd/internal/transfer"
	"gopkg.in/yaml.v3"
)

// decodeArgs copies the tool arguments into v, matching json tags.
func decodeArgs(request mcp.CallToolRequest, v interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           v,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(request.GetArguments()); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// toText serializes v to YAML for MCP response.
func toText(v interface{}) (*mcp.CallToolResult, error) {
	b, err := yaml.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

type pathArgs struct {
	Path string `json:"path"`
}

type hitArgs struct {
	Path string  `json:"path"`
	X    float32 `json:"x"`
	Y    float32 `json:"y"`
}

type probeArgs struct {
	Paths []string `json:"paths"`
}

type decodePayloadArgs struct {
	Flavor string `json:"flavor"`
	Data   string `json:"data"`
}

type replayArgs struct {
	Script string `json:"script"`
}

func (s *Server) handleReplay(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args replayArgs
	if err := decodeArgs(request, &args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	sc, err := script.Parse([]byte(args.Script))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, err := s.runner.Run(ctx, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return toText(res)
}

func (s *Server) handleLayout(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args pathArgs
	if err := decodeArgs(request, &args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	l, err := s.layouts.Layout(args.Path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return toText(output.LayoutResult{
		Window:  l.Window,
		Density: l.Density,
		Regions: model.FlattenRegions(l.Regions),
	})
}

func (s *Server) handleHit(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args hitArgs
	if err := decodeArgs(request, &args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	l, err := s.layouts.Layout(args.Path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	b := s.runner.Builder
	b.IgnoreSinks = true
	tree, err := b.Build(l)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, err := tree.Hit(f32.Pt(args.X, args.Y), s.codec)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return toText(res)
}

func (s *Server) handleProbe(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args probeArgs
	if err := decodeArgs(request, &args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res := output.ProbeResult{Files: []transfer.FileDesc{}}
	for _, p := range args.Paths {
		desc, err := s.codec.Resolver().Describe(transfer.NewFileLocator(p))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		res.Files = append(res.Files, desc)
	}
	return toText(res)
}

func (s *Server) handleDecode(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args decodePayloadArgs
	if err := decodeArgs(request, &args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if args.Flavor == "" {
		args.Flavor = transfer.LocatorListFlavor
	}
	bundle := transfer.NewBundle().Put(args.Flavor, []byte(args.Data))
	return toText(output.RecordsResult{
		OK:      true,
		Action:  "decode",
		Flavor:  args.Flavor,
		Records: s.codec.Inspect(s.codec.Decode(bundle)),
	})
}

func (s *Server) handleSessionStart(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args pathArgs
	if err := decodeArgs(request, &args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	// Sessions always see the file as it is now.
	s.layouts.Invalidate(args.Path)
	l, err := s.layouts.Layout(args.Path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	sess, err := s.runner.Start(l)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.sessionMu.Lock()
	s.session = sess
	s.sessionMu.Unlock()

	return toText(output.LayoutResult{
		Window:  l.Window,
		Density: l.Density,
		Regions: model.FlattenRegions(l.Regions),
	})
}

func (s *Server) currentSession() (*script.Session, error) {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()
	if s.session == nil {
		return nil, fmt.Errorf("no session: call session_start first")
	}
	return s.session, nil
}

func (s *Server) handleSessionEvent(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := s.currentSession()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var e script.Event
	if err := decodeArgs(request, &e); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	step, err := sess.Apply(e)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return toText(step)
}

func (s *Server) handleSessionResult(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := s.currentSession()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return toText(sess.Result())
}
