package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/ent-client/internal/constants"
	"github.com/fivetwenty-io/ent-client/pkg/ent"
)

const dateLayout = "2006-01-02 15:04"

// NewMessagesCommand creates the messages command group.
func NewMessagesCommand() *cobra.Command {
	return newMessagesCommand(newSession)
}

func newMessagesCommand(create sessionFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "messages",
		Aliases: []string{"message", "mail"},
		Short:   "Manage messages",
		Long:    "Read, send, reply to and trash mailbox messages",
	}

	cmd.AddCommand(newMessagesListCommand(create))
	cmd.AddCommand(newMessagesShowCommand(create))
	cmd.AddCommand(newMessagesSendCommand(create))
	cmd.AddCommand(newMessagesReplyCommand(create))
	cmd.AddCommand(newMessagesTrashCommand(create))

	return cmd
}

func newMessagesListCommand(create sessionFactory) *cobra.Command {
	var (
		folderName string
		page       int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List messages",
		Long:  "List one page of a mailbox folder (Inbox, Sent, Drafts, Trash)",
		RunE: func(cmd *cobra.Command, args []string) error {
			folder, err := ent.ParseFolder(folderName)
			if err != nil {
				return err
			}

			session, err := create()
			if err != nil {
				return err
			}

			messages, err := session.FetchMessages(context.Background(), folder, page)
			if err != nil {
				return fmt.Errorf("failed to list messages: %w", err)
			}

			return renderMessages(cmd.OutOrStdout(), viper.GetString("output"), messages)
		},
	}

	cmd.Flags().StringVarP(&folderName, "folder", "f", string(ent.FolderInbox), "folder to list")
	cmd.Flags().IntVarP(&page, "page", "p", 0, "page of the folder")

	return cmd
}

func renderMessages(out io.Writer, format string, messages []*ent.Message) error {
	if len(messages) == 0 && printEmpty(out, format, "No messages found") {
		return nil
	}

	return render(out, format, messages, func(table *tablewriter.Table) {
		table.Header("ID", "From", "Subject", "Date", "Unread", "Attachment")

		for _, message := range messages {
			_ = table.Append(
				message.ID,
				message.DisplayName(message.From),
				message.Subject,
				message.Time().Local().Format(dateLayout),
				boolMark(message.Unread),
				boolMark(message.HasAttachment),
			)
		}
	})
}

func newMessagesShowCommand(create sessionFactory) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "show MESSAGE_ID",
		Short: "Show a message",
		Long:  "Display a message with its body converted to plain text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := create()
			if err != nil {
				return err
			}

			message, err := session.FetchMessage(context.Background(), args[0], !raw)
			if err != nil {
				return fmt.Errorf("failed to fetch message: %w", err)
			}

			return renderMessage(cmd.OutOrStdout(), viper.GetString("output"), message)
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "keep the HTML body")

	return cmd
}

func renderMessage(out io.Writer, format string, message *ent.Message) error {
	err := render(out, format, message, func(table *tablewriter.Table) {
		table.Header("Property", "Value")
		_ = table.Append("ID", message.ID)
		_ = table.Append("From", message.DisplayName(message.From))
		_ = table.Append("To", displayNames(message, message.To))
		_ = table.Append("Cc", displayNames(message, message.Cc))
		_ = table.Append("Subject", message.Subject)
		_ = table.Append("Date", message.Time().Local().Format(dateLayout))

		for _, attachment := range message.Attachments {
			_ = table.Append("Attachment", fmt.Sprintf("%s (%d bytes)", attachment.Filename, attachment.Size))
		}
	})
	if err != nil {
		return err
	}

	if format == "" || format == constants.FormatTable {
		_, _ = fmt.Fprintf(out, "\n%s\n", message.Body)
	}

	return nil
}

func displayNames(message *ent.Message, ids []string) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, message.DisplayName(id))
	}

	return strings.Join(names, ", ")
}

type messageFlags struct {
	to          []string
	cc          []string
	bcc         []string
	subject     string
	body        string
	signature   string
	attachments []string
	html        bool
}

func (f *messageFlags) register(cmd *cobra.Command, recipients bool) {
	if recipients {
		cmd.Flags().StringSliceVar(&f.to, "to", nil, "recipient user ids")
	}

	cmd.Flags().StringSliceVar(&f.cc, "cc", nil, "carbon copy user ids")
	cmd.Flags().StringSliceVar(&f.bcc, "bcc", nil, "blind carbon copy user ids")
	cmd.Flags().StringVarP(&f.subject, "subject", "s", "", "message subject")
	cmd.Flags().StringVarP(&f.body, "body", "b", "", "message body, one paragraph per line")
	cmd.Flags().StringVar(&f.signature, "signature", "", "signature appended to the body")
	cmd.Flags().StringSliceVar(&f.attachments, "attachment", nil, "attachment ids")
	cmd.Flags().BoolVar(&f.html, "html", false, "send the body as HTML, unchanged")
}

func (f *messageFlags) config() *ent.MessageConfig {
	return &ent.MessageConfig{
		To:          f.to,
		Cc:          f.cc,
		Bcc:         f.bcc,
		Subject:     f.subject,
		Body:        f.body,
		ParseBody:   !f.html,
		Signature:   f.signature,
		Attachments: f.attachments,
	}
}

func newMessagesSendCommand(create sessionFactory) *cobra.Command {
	var flags messageFlags

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a message",
		Long:  "Send a new message. Body lines become paragraphs unless --html is set",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := create()
			if err != nil {
				return err
			}

			id, err := session.SendMessage(context.Background(), flags.config())
			if err != nil {
				return fmt.Errorf("failed to send message: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Message sent: %s\n", id)

			return nil
		},
	}

	flags.register(cmd, true)

	return cmd
}

func newMessagesReplyCommand(create sessionFactory) *cobra.Command {
	var flags messageFlags

	cmd := &cobra.Command{
		Use:   "reply MESSAGE_ID",
		Short: "Reply to a message",
		Long:  "Reply to the sender of a message, quoting the original unless --html is set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := create()
			if err != nil {
				return err
			}

			ctx := context.Background()

			original, err := session.FetchMessage(ctx, args[0], false)
			if err != nil {
				return fmt.Errorf("failed to fetch message: %w", err)
			}

			id, err := session.ReplyMessage(ctx, original, flags.config())
			if err != nil {
				return fmt.Errorf("failed to reply: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Reply sent: %s\n", id)

			return nil
		},
	}

	flags.register(cmd, false)

	return cmd
}

func newMessagesTrashCommand(create sessionFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "trash MESSAGE_ID...",
		Short: "Move messages to the trash",
		Long:  "Move one or more messages to the trash folder",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := create()
			if err != nil {
				return err
			}

			ctx := context.Background()

			for _, id := range args {
				err := session.TrashMessage(ctx, id)
				if err != nil {
					return fmt.Errorf("failed to trash message %s: %w", id, err)
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to the trash\n", id)
			}

			return nil
		},
	}
}
