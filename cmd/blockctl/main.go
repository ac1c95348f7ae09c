package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/pflag"

	"noders-content-service/internal/application/editor"
	model "noders-content-service/internal/domain/models"
	"noders-content-service/internal/infrastructure/config"
	"noders-content-service/internal/infrastructure/logger"
	blocks_client "noders-content-service/internal/infrastructure/outbound/client/blocks"
)

const usage = `usage: blockctl [global flags] <command> [flags]

commands:
  create-post --title T
  list        --post ID
  add         --post ID --type text|quote|image|youtube [content flags]
  update      --post ID --block ID [content flags]
  delete      --post ID --block ID [--yes]
  upload      --file PATH [--usage post_block] [--alt TEXT]

content flags:
  --html    text body            (text)
  --quote   quote text           (quote)
  --author  quote author         (quote)
  --source  quote source         (quote)
  --image   image id             (image)
  --file    upload before adding (image)
  --caption image caption        (image)
  --alt     image alt text       (image)
  --url     youtube link         (youtube)
  --title   video title          (youtube)
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "blockctl:", err)
		os.Exit(1)
	}
}

type app struct {
	client *blocks_client.Client
	in     io.Reader
	out    io.Writer
}

func run(ctx context.Context, args []string, in io.Reader, out io.Writer) error {
	cfg := config.MustLoad()

	global := pflag.NewFlagSet("blockctl", pflag.ContinueOnError)
	global.SetInterspersed(false)
	global.Usage = func() { fmt.Fprint(out, usage) }
	baseURL := global.String("base-url", cfg.Client.BaseURL, "content service base URL")
	token := global.String("token", cfg.Client.Token, "bearer token")
	timeout := global.Duration("timeout", cfg.Client.Timeout, "request timeout")
	if err := global.Parse(args); err != nil {
		return err
	}
	if global.NArg() == 0 {
		global.Usage()
		return errors.New("missing command")
	}

	log := logger.New(cfg.Env)
	a := &app{
		client: blocks_client.NewClient(*baseURL, *token, *timeout, log),
		in:     in,
		out:    out,
	}

	command, rest := global.Arg(0), global.Args()[1:]
	switch command {
	case "create-post":
		return a.createPost(ctx, rest)
	case "list":
		return a.list(ctx, rest)
	case "add":
		return a.add(ctx, rest)
	case "update":
		return a.update(ctx, rest)
	case "delete":
		return a.remove(ctx, rest)
	case "upload":
		return a.upload(ctx, rest)
	default:
		global.Usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

type contentFlags struct {
	html, quote, author, source   string
	image, file, caption, altText string
	url, title                    string
}

func (f *contentFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.html, "html", "", "text body")
	fs.StringVar(&f.quote, "quote", "", "quote text")
	fs.StringVar(&f.author, "author", "", "quote author")
	fs.StringVar(&f.source, "source", "", "quote source")
	fs.StringVar(&f.image, "image", "", "image id")
	fs.StringVar(&f.file, "file", "", "image file to upload first")
	fs.StringVar(&f.caption, "caption", "", "image caption")
	fs.StringVar(&f.altText, "alt", "", "image alt text")
	fs.StringVar(&f.url, "url", "", "youtube link")
	fs.StringVar(&f.title, "title", "", "video title")
}

// apply copies the flags that were set onto the draft.
func (f *contentFlags) apply(ctx context.Context, fs *pflag.FlagSet, draft editor.Draft, uploader editor.ImageUploader) error {
	switch d := draft.(type) {
	case *editor.TextDraft:
		if fs.Changed("html") {
			d.HTML = f.html
		}
	case *editor.QuoteDraft:
		if fs.Changed("quote") {
			d.Quote = f.quote
		}
		if fs.Changed("author") {
			d.Author = f.author
		}
		if fs.Changed("source") {
			d.Source = f.source
		}
	case *editor.ImageDraft:
		if fs.Changed("image") {
			d.ImageID = f.image
		}
		if fs.Changed("caption") {
			d.Caption = f.caption
		}
		if fs.Changed("alt") {
			d.AltText = f.altText
		}
		if f.file != "" {
			data, err := os.ReadFile(f.file)
			if err != nil {
				return err
			}
			if _, err := d.Upload(ctx, uploader, filepath.Base(f.file), data); err != nil {
				return fmt.Errorf("upload image: %w", err)
			}
		}
	case *editor.YouTubeDraft:
		if fs.Changed("url") {
			d.URL = f.url
		}
		if fs.Changed("title") {
			d.Title = f.title
		}
	}
	return nil
}

func (a *app) createPost(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("create-post", pflag.ContinueOnError)
	title := fs.String("title", "", "post title")
	if err := fs.Parse(args); err != nil {
		return err
	}
	post, err := a.client.CreatePost(ctx, *title)
	if err != nil {
		return err
	}
	return a.print(post)
}

func (a *app) list(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("list", pflag.ContinueOnError)
	postID := fs.String("post", "", "post id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	ed, err := a.editor(ctx, *postID, false)
	if err != nil {
		return err
	}
	counts := ed.Counts()
	fmt.Fprintf(a.out, "%d/%d blocks, %d/%d images\n", counts.Total, model.MaxBlocksPerPost, counts.Images, model.MaxImageBlocksPerPost)
	return a.print(ed.Blocks())
}

func (a *app) add(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("add", pflag.ContinueOnError)
	postID := fs.String("post", "", "post id")
	blockType := fs.String("type", "", "block type")
	var content contentFlags
	content.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	ed, err := a.editor(ctx, *postID, false)
	if err != nil {
		return err
	}
	draft, err := ed.OpenAdd(model.BlockType(*blockType))
	if err != nil {
		return err
	}
	if err := content.apply(ctx, fs, draft, a.client); err != nil {
		return err
	}
	block, err := ed.SubmitAdd(ctx, draft)
	if err != nil {
		return a.noticeOr(ed, err)
	}
	return a.print(block)
}

func (a *app) update(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("update", pflag.ContinueOnError)
	postID := fs.String("post", "", "post id")
	blockID := fs.String("block", "", "block id")
	var content contentFlags
	content.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	ed, err := a.editor(ctx, *postID, false)
	if err != nil {
		return err
	}
	current, _, ok := ed.State().Find(*blockID)
	if !ok {
		return fmt.Errorf("block %s not found in post %s", *blockID, *postID)
	}
	draft, err := editor.DraftFromBlock(current)
	if err != nil {
		return err
	}
	if err := content.apply(ctx, fs, draft, a.client); err != nil {
		return err
	}
	block, err := ed.Edit(ctx, *blockID, draft)
	if err != nil {
		return a.noticeOr(ed, err)
	}
	return a.print(block)
}

func (a *app) remove(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("delete", pflag.ContinueOnError)
	postID := fs.String("post", "", "post id")
	blockID := fs.String("block", "", "block id")
	yes := fs.BoolP("yes", "y", false, "do not ask for confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ed, err := a.editor(ctx, *postID, *yes)
	if err != nil {
		return err
	}
	if err := ed.Remove(ctx, *blockID); err != nil {
		return a.noticeOr(ed, err)
	}
	if n := ed.State().Notice; n != nil {
		fmt.Fprintln(a.out, n.Message)
	}
	return nil
}

func (a *app) upload(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("upload", pflag.ContinueOnError)
	file := fs.String("file", "", "image file")
	usage := fs.String("usage", string(model.ImageUsagePostBlock), "post_block, avatar or project")
	alt := fs.String("alt", "", "alt text")
	if err := fs.Parse(args); err != nil {
		return err
	}
	data, err := os.ReadFile(*file)
	if err != nil {
		return err
	}
	image, err := a.client.UploadImage(ctx, &model.UploadImageDTO{
		Filename: filepath.Base(*file),
		Data:     data,
		Usage:    model.ImageUsage(*usage),
		AltText:  *alt,
	})
	if err != nil {
		return err
	}
	return a.print(image)
}

func (a *app) editor(ctx context.Context, postID string, assumeYes bool) (*editor.PostEditor, error) {
	if postID == "" {
		return nil, errors.New("--post is required")
	}
	ed := editor.NewPostEditor(postID, a.client, newPromptConfirmer(a.in, a.out, assumeYes))
	if err := ed.Load(ctx); err != nil {
		return nil, a.noticeOr(ed, err)
	}
	return ed, nil
}

// noticeOr prefers the message the editor surfaced over the raw error.
func (a *app) noticeOr(ed *editor.PostEditor, err error) error {
	if n := ed.State().Notice; n != nil && n.Level == editor.NoticeError {
		return errors.New(n.Message)
	}
	return err
}

func (a *app) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
