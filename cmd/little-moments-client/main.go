package main

import (
	"context"
	"fmt"
	"log"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/twitsprout/tools"
	"github.com/twitsprout/tools/zap"

	"github.com/AJMerr/little-moments-client/internal/rest"
	"github.com/AJMerr/little-moments-client/internal/session"
	"github.com/AJMerr/little-moments-client/internal/storage"
	"github.com/AJMerr/little-moments-client/internal/urlcache"
)

var version string

type variables struct {
	BaseURL  string `required:"true" envconfig:"base_url"`
	LogLevel string `required:"false" envconfig:"log_level"`
	PageSize int    `required:"false" envconfig:"page_size"`
}

var v variables

func init() {
	// A local .env is optional; real env vars win.
	_ = godotenv.Load()

	envconfig.MustProcess("little_moments", &v)
	if v.LogLevel == "" {
		v.LogLevel = "info"
	}
}

func main() {
	logger := zap.New("little-moments-client", version, os.Stderr)
	if err := logger.SetLevel(v.LogLevel); err != nil {
		logger.Error("failed to set log level", "error", err.Error())
	}

	sess := newSession(v, logger)

	ctx := context.Background()
	args := os.Args[1:]
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	var err error
	switch args[0] {
	case "photos":
		err = runPhotos(ctx, sess)
	case "albums":
		err = runAlbums(ctx, sess)
	case "album":
		if len(args) < 2 {
			usage()
			os.Exit(2)
		}
		err = runAlbum(ctx, sess, args[1])
	case "upload":
		if len(args) < 2 {
			usage()
			os.Exit(2)
		}
		err = runUpload(ctx, sess, args[1], strings.Join(args[2:], " "))
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		logger.Error("command failed", "command", args[0], "details", err.Error())
		os.Exit(1)
	}
}

func newSession(v variables, logger tools.Logger) *session.Session {
	api, err := rest.New(rest.Config{
		BaseURL: v.BaseURL,
		Logger:  logger,
	})
	if err != nil {
		log.Fatal(err)
	}
	urls, err := urlcache.New(urlcache.Config{
		Source: api,
		Logger: logger,
	})
	if err != nil {
		log.Fatal(err)
	}
	sess, err := session.New(session.Config{
		Photos:   api,
		Albums:   api,
		Objects:  storage.New(nil),
		URLs:     urls,
		Logger:   logger,
		PageSize: v.PageSize,
	})
	if err != nil {
		log.Fatal(err)
	}
	return sess
}

func runPhotos(ctx context.Context, sess *session.Session) error {
	if err := sess.LoadPhotos(ctx); err != nil {
		return err
	}
	for _, p := range sess.Photos() {
		signed, err := sess.URLs().GetURL(ctx, p.ID)
		if err != nil {
			fmt.Printf("%s  %-30s  <no url: %s>\n", p.ID, p.Title, err)
			continue
		}
		fmt.Printf("%s  %-30s  %s\n", p.ID, p.Title, signed.URL)
	}
	if sess.MorePhotos() {
		fmt.Println("(more photos available)")
	}
	return nil
}

func runAlbums(ctx context.Context, sess *session.Session) error {
	if err := sess.LoadAlbums(ctx); err != nil {
		return err
	}
	for _, a := range sess.Albums() {
		cover := a.CoverPhotoID.ValueOrZero()
		if cover == "" {
			cover = "-"
		}
		fmt.Printf("%s  %-30s  cover=%s\n", a.ID, a.Title, cover)
	}
	if sess.MoreAlbums() {
		fmt.Println("(more albums available)")
	}
	return nil
}

func runAlbum(ctx context.Context, sess *session.Session, id string) error {
	view, err := sess.OpenAlbum(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("%s - %s\n", view.Album.Title, view.Album.Description)
	for _, p := range view.Photos {
		marker := " "
		if view.Album.CoverPhotoID.ValueOrZero() == p.ID {
			marker = "*"
		}
		fmt.Printf("%s %s  %s\n", marker, p.ID, p.Title)
	}
	if view.HasMore {
		fmt.Println("(more photos available)")
	}
	return nil
}

func runUpload(ctx context.Context, sess *session.Session, path, title string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return err
	}
	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	photo, err := sess.Upload(ctx, session.UploadRequest{
		Filename:    filepath.Base(path),
		ContentType: contentType,
		Title:       title,
		Size:        info.Size(),
		Body:        f,
	})
	if err != nil {
		return err
	}
	fmt.Printf("uploaded %s as %s\n", filepath.Base(path), photo.ID)
	return nil
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: little-moments-client <command>

commands:
  photos              list the photo library with signed display URLs
  albums              list albums
  album <id>          show one album and its photos
  upload <file> [title]  upload a photo`)
}
