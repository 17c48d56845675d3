/*
Copyright © 2021 Billy G. Allie <bill.allie@defiant.mug.org>

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
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bgallie/rotorsim/cryptors/machines"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the machine settings",
	Run: func(cmd *cobra.Command, args []string) {
		m, c := machineAndConfigurator()
		conf, err := c.GetConfig(m)
		cobra.CheckErr(err)
		names := make([]string, 0, len(conf))
		for n := range conf {
			names = append(names, n)
		}
		sort.Strings(names)
		for _, n := range names {
			fmt.Printf("%s = %s\n", n, conf[n])
		}
	},
}

// configSetCmd represents the config set command
var configSetCmd = &cobra.Command{
	Use:   "set keyword=value ...",
	Short: "Change machine settings and reset the rotor positions",
	Long: `Apply one or more keyword=value settings on top of the machine's
current configuration.  The whole set is validated before anything is
touched; rotor positions return to the ground state on success.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		m, c := machineAndConfigurator()
		conf, err := c.GetConfig(m)
		cobra.CheckErr(err)
		for _, arg := range args {
			name, value, found := strings.Cut(arg, "=")
			if !found {
				cobra.CheckErr(fmt.Sprintf("argument %q is not of the form keyword=value", arg))
			}
			conf[name] = value
		}
		cobra.CheckErr(c.ConfigureMachine(conf, m))
		saveMachine(m)
		fmt.Printf("%s: %s\n", m.Description(), m.VisualizeAllPositions())
	},
}

// configKeywordsCmd represents the config keywords command
var configKeywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "List the settings the machine understands",
	Run: func(cmd *cobra.Command, args []string) {
		_, c := machineAndConfigurator()
		for _, kw := range c.Keywords() {
			fmt.Printf("%-12s %-6s %s\n", kw.Name, kw.Type, kw.Help)
		}
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configKeywordsCmd)
}

func machineAndConfigurator() (machines.Machine, machines.Configurator) {
	m := loadMachine()
	c, err := machines.ConfiguratorFor(m.Name(), m.MachineType())
	cobra.CheckErr(err)
	return m, c
}
