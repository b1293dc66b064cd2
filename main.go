package main

import (
	"fmt"
	"log"
	"net/http"

	"reportdesk/config"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var conf *config.Config

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "reportdesk",
		Short:        "Issue/report tracker with server-rendered CRUD forms",
		SilenceUsage: true,
		RunE:         runServe, // bare invocation serves, like `reportdesk serve`
	}
	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP server",
			RunE:  runServe,
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Run schema migration and exit",
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := setup(); err != nil {
					return err
				}
				fmt.Println("migration completed")
				return nil
			},
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Load demo fixtures (users, categories, reports) and exit",
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := setup(); err != nil {
					return err
				}
				if err := seedDB(); err != nil {
					return err
				}
				fmt.Println("seeding completed")
				return nil
			},
		},
	)
	return root
}

// setup loads configuration, opens the database and wires the services.
func setup() error {
	var err error
	conf, err = config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	jwtSecret = []byte(conf.JWT.Secret)
	jwtTTL = conf.JWT.TTL
	if err := initDB(conf); err != nil {
		return err
	}
	initServices()
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := setup(); err != nil {
		return err
	}
	r := gin.Default()
	r.LoadHTMLGlob("templates/*.html")
	setupRoutes(r)
	srv := &http.Server{Addr: conf.Addr, Handler: methodOverride(r)}
	return srv.ListenAndServe()
}
