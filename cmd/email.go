/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ademuri/discogs-eda/internal/dashboard"
)

type SendEmailConfig struct {
	DbPath         string
	DataPath       string
	From           string
	To             string
	Pages          []string
	Options        dashboard.Options
	DryRun         bool
	SendgridAPIKey string
}

// emailDataPath is not bound to config; pages use their own <page>_data keys.
var emailDataPath string

var emailCmd = &cobra.Command{
	Use:   "email <address> <page...>",
	Short: "Sends an email report",
	Long: `Emails an HTML report of one or more dashboard pages.
  <page> is one or more of: overview, electronic, styles.
  Each page reads --data if given, else its <page>_data config key,
  else its default file.`,
	Args: cobra.MinimumNArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if viper.GetString("from") == "" {
			return fmt.Errorf("required flag(s) \"from\" not set")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		config := SendEmailConfig{
			DbPath:         viper.GetString("database"),
			DataPath:       emailDataPath,
			From:           viper.GetString("from"),
			To:             args[0],
			Pages:          args[1:],
			Options:        pageOptions(),
			DryRun:         viper.GetBool("dry_run"),
			SendgridAPIKey: viper.GetString("sendgrid_api_key"),
		}
		if err := sendEmail(cmd.Context(), os.Stdout, config); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(emailCmd)

	var from string
	emailCmd.Flags().StringVar(&from, "from", "", "From email address")
	viper.BindPFlag("from", emailCmd.Flags().Lookup("from"))

	emailCmd.Flags().StringVar(&emailDataPath, "data", "", "CSV file every page reads instead of its default")

	var apiKey string
	emailCmd.Flags().StringVar(&apiKey, "sendgrid_api_key", "", "SendGrid API key")
	viper.BindPFlag("sendgrid_api_key", emailCmd.Flags().Lookup("sendgrid_api_key"))

	var dryRun bool
	emailCmd.Flags().BoolVar(&dryRun, "dry_run", false, "Print the email instead of sending it")
	viper.BindPFlag("dry_run", emailCmd.Flags().Lookup("dry_run"))
}

func sendEmail(ctx context.Context, out io.Writer, config SendEmailConfig) error {
	subject, body, err := generateEmailContent(ctx, config)
	if err != nil {
		return err
	}

	if config.DryRun {
		fmt.Fprintf(out, "Would have sent email: \nsubject: %s\n%s\n", subject, body)
		return nil
	}
	if config.SendgridAPIKey == "" {
		return fmt.Errorf("sendgrid_api_key must be set in order to send emails")
	}

	from := mail.NewEmail("discogs-eda", config.From)
	to := mail.NewEmail(config.To, config.To)
	message := mail.NewSingleEmail(from, subject, to, subject, body)
	if err := deliver(ctx, newMailSender(config.SendgridAPIKey), message); err != nil {
		return fmt.Errorf("sendEmail: %w", err)
	}

	loggerFromContext(ctx).Info("Sent email", "to", config.To, "pages", strings.Join(config.Pages, ","))
	return nil
}

type mailSender interface {
	Send(email *mail.SGMailV3) (*rest.Response, error)
}

var newMailSender = func(apiKey string) mailSender {
	return sendgrid.NewSendClient(apiKey)
}

// sendDelay is the base delay between send attempts.
var sendDelay = time.Second

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.code, e.body)
}

// deliver sends message, retrying transport failures and 5xx responses.
func deliver(ctx context.Context, sender mailSender, message *mail.SGMailV3) error {
	attempt := 0
	return retry.Do(func() error {
		attempt++
		response, err := sender.Send(message)
		if err == nil && response.StatusCode >= 300 {
			err = &statusError{code: response.StatusCode, body: response.Body}
		}
		if err != nil {
			loggerFromContext(ctx).Debug("Send attempt failed", "attempt", attempt, "err", err)
		}
		return err
	},
		retry.Attempts(3),
		retry.Delay(sendDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			if serr, ok := err.(*statusError); ok {
				// Only retry on 5xx errors
				return serr.code/100 == 5
			}
			return true
		}))
}

func generateEmailContent(ctx context.Context, config SendEmailConfig) (subject string, body string, err error) {
	var pages []dashboard.Page
	for _, name := range config.Pages {
		source, err := getPageFromName(name)
		if err != nil {
			return "", "", err
		}
		page, err := buildPage(ctx, config.DbPath, config.DataPath, source, config.Options)
		if err != nil {
			return "", "", fmt.Errorf("building page %s: %w", name, err)
		}
		pages = append(pages, page)
	}

	out := new(bytes.Buffer)
	if err := renderPages(out, pages, "html"); err != nil {
		return "", "", err
	}

	// Subject line format: Discogs report: <page>, <page>
	subject = fmt.Sprintf("Discogs report: %s", strings.Join(config.Pages, ", "))
	return subject, out.String(), nil
}
