// Command grpcwebcurl sends a single gRPC-Web request and prints the
// decoded data frames and trailers, for poking at a gRPC-Web endpoint
// by hand the way curl pokes at a REST one.
package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	grpcweb "github.com/grpcweb/client"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		baseURL string
		uri     string
		dataB64 string
		timeout time.Duration
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "grpcwebcurl",
		Short: "Send one gRPC-Web request and print the decoded frames",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := zap.NewNop()
			if verbose {
				l, err := zap.NewDevelopment()
				if err != nil {
					return err
				}
				logger = l
			}
			defer logger.Sync()

			body, err := base64.StdEncoding.DecodeString(dataB64)
			if err != nil {
				return fmt.Errorf("--data must be base64: %w", err)
			}

			client := grpcweb.NewClient(baseURL,
				grpcweb.WithClientLogger(logger),
				grpcweb.WithClientFetchOptions(grpcweb.FetchOptions{Timeout: timeout}),
			)

			ctx := context.Background()
			resp, err := client.Invoke(ctx, uri, http.Header{}, body)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			fmt.Printf("status: %d\n", resp.StatusCode)

			rb, ok := resp.Body.(*grpcweb.ResponseBody)
			if !ok {
				return fmt.Errorf("unexpected response body type")
			}

			for {
				frame, err := rb.Next(ctx)
				if err != nil {
					if err == io.EOF {
						return nil
					}
					return err
				}
				switch frame.Kind {
				case grpcweb.FrameKindData:
					fmt.Printf("data frame: %d bytes\n", len(frame.Data))
				case grpcweb.FrameKindTrailers:
					code, msg := grpcweb.Status(frame.Trailers)
					fmt.Printf("trailers: grpc-status=%s grpc-message=%q\n", code, msg)
				}
			}
		},
	}

	cmd.Flags().StringVar(&baseURL, "url", "", "base URL of the gRPC-Web server")
	cmd.Flags().StringVar(&uri, "uri", "/", "request URI, appended to --url verbatim")
	cmd.Flags().StringVar(&dataB64, "data", "", "base64-encoded request body")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "abort the call after this duration")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	cmd.MarkFlagRequired("url")

	return cmd
}
