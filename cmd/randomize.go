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
	"strings"

	"github.com/spf13/cobra"
)

// randomizeCmd represents the randomize command
var randomizeCmd = &cobra.Command{
	Use:   "randomize [parameter]",
	Short: "Draw a fresh random machine setting",
	Long: `Replace the machine's configuration with a randomly drawn valid one.
Without a parameter the machine's first advertised randomizer parameter
is used; run with --list to see what the machine offers.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		m := loadMachine()
		if listParams {
			fmt.Println(strings.Join(m.RandomizerParams(), " "))
			return
		}
		param := ""
		if len(args) == 1 {
			param = args[0]
		}
		cobra.CheckErr(m.Randomize(param))
		saveMachine(m)
		fmt.Printf("%s: %s\n", m.Description(), m.VisualizeAllPositions())
	},
}

var listParams bool

func init() {
	rootCmd.AddCommand(randomizeCmd)
	randomizeCmd.Flags().BoolVarP(&listParams, "list", "l", false, "list the machine's randomizer parameters")
}
