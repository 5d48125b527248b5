package main

import (
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/bobinette/fileshelf/clients"
	"github.com/bobinette/fileshelf/clients/auth"
	"github.com/bobinette/fileshelf/clients/files"
	"github.com/bobinette/fileshelf/clients/folders"
	"github.com/bobinette/fileshelf/clients/permissions"
	"github.com/bobinette/fileshelf/clients/shared"
	"github.com/bobinette/fileshelf/config"
	"github.com/bobinette/fileshelf/hooks"
	"github.com/bobinette/fileshelf/log"
	"github.com/bobinette/fileshelf/navigation"
	"github.com/bobinette/fileshelf/query"
	"github.com/bobinette/fileshelf/session"
	sessionBolt "github.com/bobinette/fileshelf/session/bolt"
	"github.com/bobinette/fileshelf/upload"
)

var (
	// flags
	env        string
	configFile string
	yes        bool

	cfg    config.Configuration
	logger log.Logger

	// session
	boltDriver *sessionBolt.Driver
	sess       *session.Session

	// navigation
	bus       *navigation.Bus
	navigator *navigation.Navigator

	// hooks
	cache           *query.Cache
	userHooks       *hooks.Users
	fileHooks       *hooks.Files
	folderHooks     *hooks.Folders
	permissionHooks *hooks.Permissions
	sharedHooks     *hooks.Shared

	uploader *upload.Uploader
)

func init() {
	RootCmd.PersistentFlags().StringVar(&env, "env", "dev", "environment")
	RootCmd.PersistentFlags().StringVar(&configFile, "config", "", "configuration file")
	RootCmd.PersistentFlags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
}

var RootCmd = cobra.Command{
	Use:          "fileshelf",
	Short:        "Browse and manage your files from the terminal",
	Long:         "Browse and manage your files from the terminal",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		required := configFile != ""
		if configFile == "" {
			configFile = config.DefaultPath(env)
		}

		var err error
		cfg, err = config.Load(configFile, required, nil)
		if err != nil {
			log.New(env).Fatal("could not load configuration:", err)
		}

		logger = log.NewWithOutput(env, cfg.Log.Level, os.Stderr)

		// Session
		boltDriver = &sessionBolt.Driver{}
		if err := boltDriver.Open(cfg.Session.Path); err != nil {
			logger.Fatal("could not open session store:", err)
		}
		sess = session.New(&sessionBolt.SessionStore{Driver: boltDriver})
		if err := sess.Restore(); err != nil {
			logger.Fatal(err)
		}

		// Navigation
		bus = navigation.NewBus()
		navigator = navigation.NewNavigator(bus)
		sess.OnTeardown(func() {
			bus.Publish(navigation.SessionEnded{})
		})

		// Clients
		base := clients.NewClient(
			http.DefaultClient,
			cfg.API.BaseURL,
			sess,
			clients.WithTimeout(cfg.API.Timeout),
			clients.WithLogger(logger.WithField("component", "client")),
		)

		wire(base, files.NewClient(base).WithUploadTimeouts(cfg.API.UploadTimeout, cfg.API.FolderUploadTimeout))
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if boltDriver != nil {
			boltDriver.Close()
		}
	},
}

// wire builds the cache, the hooks and the uploader on top of base.
func wire(base *clients.Client, filesClient *files.Client) {
	cache = query.New(query.WithLogger(logger.WithField("component", "cache")))
	deps := hooks.Deps{
		Session:  sess,
		Cache:    cache,
		Notifier: hooks.LogNotifier(logger, os.Stderr),
		Logger:   logger.WithField("component", "hooks"),
	}
	userHooks = hooks.NewUsers(deps, auth.NewClient(base), sess)
	fileHooks = hooks.NewFiles(deps, filesClient)
	folderHooks = hooks.NewFolders(deps, folders.NewClient(base))
	permissionHooks = hooks.NewPermissions(deps, permissions.NewClient(base))
	sharedHooks = hooks.NewShared(deps, shared.NewClient(base))

	uploader = upload.NewUploader(fileHooks, logger.WithField("component", "upload"))
}
