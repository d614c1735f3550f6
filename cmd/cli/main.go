package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"solarapi/pkg/client"
	"solarapi/pkg/models"
)

const (
	apiFlagName      = "api"
	tableFlagName    = "table"
	timeoutFlagName  = "timeout"
	isPlanetFlagName = "isPlanet"
	nameFlagName     = "name"

	defaultBaseURL = "http://localhost:3001"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "solar"
	app.Usage = "query the Solar API"
	app.Writer = out
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   apiFlagName,
			Usage:  "API base URL",
			Value:  defaultBaseURL,
			EnvVar: "SOLAR_API_URL",
		},
		cli.BoolFlag{
			Name:  tableFlagName,
			Usage: "print a table instead of JSON",
		},
		cli.DurationFlag{
			Name:  timeoutFlagName,
			Usage: "request timeout",
			Value: 15 * time.Second,
		},
	}
	app.Commands = []cli.Command{
		bodiesCommand(),
		{
			Name:   "sun",
			Usage:  "show the Sun",
			Action: singleAction(func(ctx context.Context, c *client.Client) (*models.CelestialBody, error) { return c.Sun(ctx) }),
		},
		{
			Name:   "pluto",
			Usage:  "show Pluto",
			Action: singleAction(func(ctx context.Context, c *client.Client) (*models.CelestialBody, error) { return c.Pluto(ctx) }),
		},
		{
			Name:  "planets",
			Usage: "list the planets",
			Action: func(c *cli.Context) error {
				ctx, cancel, api := setup(c)
				defer cancel()

				items, err := api.Planets(ctx)
				if err != nil {
					return errors.Wrap(err, "fetching planets")
				}
				return renderList(c, items)
			},
		},
	}
	return app
}

func bodiesCommand() cli.Command {
	return cli.Command{
		Name:  "bodies",
		Usage: "list or show celestial bodies",
		Subcommands: []cli.Command{
			{
				Name:  "list",
				Usage: "list bodies, optionally filtered",
				Flags: []cli.Flag{
					cli.StringFlag{
						Name:  isPlanetFlagName,
						Usage: "true or false",
					},
					cli.StringFlag{
						Name:  nameFlagName,
						Usage: "case-insensitive name substring",
					},
				},
				Action: func(c *cli.Context) error {
					opts := client.ListOptions{Name: c.String(nameFlagName)}
					if raw := c.String(isPlanetFlagName); raw != "" {
						v, err := strconv.ParseBool(raw)
						if err != nil {
							return errors.Errorf("--%s must be true or false", isPlanetFlagName)
						}
						opts.IsPlanet = &v
					}

					ctx, cancel, api := setup(c)
					defer cancel()

					items, err := api.ListBodies(ctx, opts)
					if err != nil {
						return errors.Wrap(err, "listing bodies")
					}
					return renderList(c, items)
				},
			},
			{
				Name:      "show",
				Usage:     "show one body by id",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					id := c.Args().First()
					if id == "" {
						return errors.New("body id is required")
					}

					ctx, cancel, api := setup(c)
					defer cancel()

					b, err := api.GetBody(ctx, id)
					if err != nil {
						return errors.Wrapf(err, "fetching body '%s'", id)
					}
					return renderOne(c, b)
				},
			},
		},
	}
}

func setup(c *cli.Context) (context.Context, context.CancelFunc, *client.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), c.GlobalDuration(timeoutFlagName))
	return ctx, cancel, client.New(c.GlobalString(apiFlagName))
}

func singleAction(fetch func(context.Context, *client.Client) (*models.CelestialBody, error)) cli.ActionFunc {
	return func(c *cli.Context) error {
		ctx, cancel, api := setup(c)
		defer cancel()

		b, err := fetch(ctx, api)
		if err != nil {
			return errors.Wrapf(err, "fetching %s", c.Command.Name)
		}
		return renderOne(c, b)
	}
}

func renderList(c *cli.Context, items []models.CelestialBody) error {
	if c.GlobalBool(tableFlagName) {
		printTable(c.App.Writer, items)
		return nil
	}
	return printJSON(c.App.Writer, items)
}

func renderOne(c *cli.Context, b *models.CelestialBody) error {
	if c.GlobalBool(tableFlagName) {
		printDetail(c.App.Writer, b)
		return nil
	}
	return printJSON(c.App.Writer, b)
}
