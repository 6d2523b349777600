package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mydatashare/mdscore/pkg/i18n"
	"github.com/mydatashare/mdscore/pkg/store"
)

type authItemView struct {
	UUID         string `json:"uuid" yaml:"uuid"`
	Name         string `json:"name" yaml:"name"`
	Description  string `json:"description,omitempty" yaml:"description,omitempty"`
	Language     string `json:"language,omitempty" yaml:"language,omitempty"`
	IDProvider   string `json:"id_provider,omitempty" yaml:"id_provider,omitempty"`
	DiscoveryURL string `json:"discovery_url" yaml:"discovery_url"`
}

func newAuthItemsCmd(a *app) *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "auth-items",
		Short: "List the available auth items",
		Example: `  mdsctl auth-items --lang fi
  mdsctl auth-items -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if lang != "" {
				code, err := i18n.Alpha3(lang)
				if err != nil {
					return err
				}
				a.client.Store().SetLanguage(code)
			}

			if err := a.client.FetchAuthItems(cmd.Context()); err != nil {
				return err
			}

			items := a.client.Store().AuthItemList()
			views := make([]authItemView, 0, len(items))
			for _, item := range items {
				views = append(views, viewAuthItem(item))
			}
			return writeOutput(cmd.OutOrStdout(), a.output, views)
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "", "language of names and descriptions, e.g. fi or fin")
	return cmd
}

func viewAuthItem(item *store.AuthItem) authItemView {
	v := authItemView{
		UUID:         item.UUID(),
		Name:         item.Text("name"),
		Description:  item.Text("description"),
		DiscoveryURL: item.DiscoveryURL(),
	}
	if res, err := item.Translate("name"); err == nil && res.Found {
		v.Language = res.Language
	}
	if idp, ok := item.IDProvider(); ok {
		v.IDProvider = idp.Text("name")
	} else {
		v.IDProvider = fmt.Sprintf("unknown (%s)", item.IDProviderUUID())
	}
	return v
}
