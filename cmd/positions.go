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

	"github.com/spf13/cobra"
)

// positionsCmd represents the positions command
var positionsCmd = &cobra.Command{
	Use:   "positions [symbols]",
	Short: "Show or set the rotor window positions",
	Long: `Without an argument, print the symbols showing in the machine's rotor
windows.  With an argument, turn the rotors so those symbols show and
write the state back.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		m := loadMachine()
		if len(args) == 0 {
			fmt.Println(m.VisualizeAllPositions())
			return
		}
		cobra.CheckErr(m.MoveAllRotors(args[0]))
		saveMachine(m)
		fmt.Println(m.VisualizeAllPositions())
	},
}

func init() {
	rootCmd.AddCommand(positionsCmd)
}
