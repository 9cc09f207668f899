package main

import (
	"net/http"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/RowanDark/cryptokit/internal/challenges"
)

func newFetchCmd(a *app) *cobra.Command {
	var baseURL string
	cmd := &cobra.Command{
		Use:     "fetch <challenge-id>",
		Short:   "Download challenge data",
		Example: `  cryptokit fetch 6 > 6.txt`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			client := a.challengeClient()
			if baseURL != "" {
				client.BaseURL = baseURL
			}
			body, err := client.Fetch(cmd.Context(), id)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write([]byte(body))
			return err
		},
	}
	cmd.Flags().StringVar(&baseURL, "base-url", "", "override the challenge data base URL")
	return cmd
}

func (a *app) challengeClient() *challenges.Client {
	return &challenges.Client{
		HTTPClient: &http.Client{Timeout: a.cfg.Fetch.Timeout},
		BaseURL:    a.cfg.Fetch.BaseURL,
		Logger:     a.logger,
		Audit:      a.audit.WithComponent("challenges"),
	}
}
