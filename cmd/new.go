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
	"os"

	"github.com/spf13/cobra"

	"github.com/bgallie/rotorsim/cryptors/machines"
)

var forceNew bool

// newCmd represents the new command
var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a fresh machine state file",
	Long: `Build the default machine named by --machine (and --variant) and write
its state file.  An existing state file is only replaced with --force.`,
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := os.Stat(stateFileName); err == nil && !forceNew {
			cobra.CheckErr(fmt.Sprintf("state file %s exists; use --force to replace it", stateFileName))
		}
		m, err := machines.MakeMachineByName(machineName, machineType)
		cobra.CheckErr(err)
		saveMachine(m)
		fmt.Printf("%s: %s\n", m.Description(), m.VisualizeAllPositions())
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().BoolVarP(&forceNew, "force", "f", false, "replace an existing state file")
}
