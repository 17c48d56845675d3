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
	"unicode"

	"github.com/bgallie/rotorsim/cryptors/machines"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var typeDecrypt bool

// typeCmd represents the type command
var typeCmd = &cobra.Command{
	Use:   "type",
	Short: "Encrypt keystrokes interactively",
	Long: `Put the terminal in raw mode and feed each keystroke through the
machine, echoing the result in groups of five.  Press Esc, Ctrl-C or
'.' (period) to stop.  The machine state is saved on exit.`,
	Run: func(cmd *cobra.Command, args []string) {
		typeSession()
	},
}

func init() {
	rootCmd.AddCommand(typeCmd)
	typeCmd.Flags().BoolVarP(&typeDecrypt, "decrypt", "d", false,
		"decrypt the keystrokes instead of encrypting them")
}

func typeSession() {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		cobra.CheckErr(fmt.Errorf("the type command needs an interactive terminal"))
	}
	m := loadMachine()
	crypt := machines.Machine.Encrypt
	if typeDecrypt {
		crypt = machines.Machine.Decrypt
	}
	oldState, err := term.MakeRaw(fd)
	cobra.CheckErr(err)
	defer term.Restore(fd, oldState)

	fmt.Printf("%s  [%s]\r\n", m.Description(), m.VisualizeAllPositions())
	alpha := m.Alphabet()
	buf := make([]byte, 1)
	group := 0
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil || n == 0 {
			break
		}
		c := buf[0]
		if c == 0x03 || c == 0x1b || c == '.' {
			break
		}
		v, err := alpha.FromVal(unicode.ToLower(rune(c)))
		if err != nil {
			continue
		}
		fmt.Printf("%c", alpha.ToVal(crypt(m, v)))
		group++
		if group == 5 {
			fmt.Print(" ")
			group = 0
		}
	}
	fmt.Print("\r\n")
	saveMachine(m)
}
