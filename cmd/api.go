package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/desertthunder/flick/internal/services"
	"github.com/desertthunder/flick/internal/shared"
	"github.com/urfave/cli/v3"
)

// APIGet makes a direct GET request to the service
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	req, err := r.apiRequest(cmd, http.MethodGet, nil)
	if err != nil {
		return err
	}
	return r.sendRaw(ctx, cmd, req, !cmd.Bool("json"))
}

// APIPost makes a direct POST request to the service
func (r *Runner) APIPost(ctx context.Context, cmd *cli.Command) error {
	data := cmd.String("data")
	if data == "" {
		return fmt.Errorf("%w: --data flag is required", shared.ErrMissingArgument)
	}

	var jsonTest any
	if err := json.Unmarshal([]byte(data), &jsonTest); err != nil {
		return fmt.Errorf("%w: data is not valid JSON: %v", shared.ErrInvalidInput, err)
	}

	req, err := r.apiRequest(cmd, http.MethodPost, []byte(data))
	if err != nil {
		return err
	}
	return r.sendRaw(ctx, cmd, req, true)
}

func (r *Runner) apiRequest(cmd *cli.Command, method string, body []byte) (services.Request, error) {
	path := cmd.StringArg("path")
	if path == "" {
		return services.Request{}, fmt.Errorf("%w: path", shared.ErrMissingArgument)
	}

	headers, err := shared.ParseHeaderFlags(cmd.StringSlice("header"))
	if err != nil {
		return services.Request{}, err
	}

	req := services.Request{Method: method, Path: path, Body: body, Headers: headers}
	if cmd.Bool("auth") {
		if err := r.requireSession(); err != nil {
			return services.Request{}, err
		}
		s, err := r.session.Require()
		if err != nil {
			return services.Request{}, fmt.Errorf("%w: run `flick auth login` first", err)
		}
		req.Token = s.Token
	}
	return req, nil
}

// sendRaw performs req and prints the body. With --curl the request is printed instead of sent.
func (r *Runner) sendRaw(ctx context.Context, cmd *cli.Command, req services.Request, pretty bool) error {
	if cmd.Bool("curl") {
		return r.writePlain("%s\n", r.api.Curl(req))
	}

	r.logger.Info("request", "method", req.Method, "path", req.Path)

	resp, err := r.api.Do(ctx, req)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized && req.Token != "" {
		r.session.Expire(fmt.Errorf("%w: %s %s", shared.ErrUnauthorized, req.Method, req.Path))
	}

	if !resp.OK() {
		return fmt.Errorf("%w: status %d, body: %s", shared.ErrAPIRequest, resp.StatusCode, string(resp.Body))
	}

	if resp.IsJSON {
		return r.writeJSON(resp.JSONData, pretty)
	}

	r.output.Write(resp.Body)
	r.output.Write([]byte("\n"))
	return nil
}
