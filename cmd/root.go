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
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/ini.v1"

	"github.com/bgallie/rotorsim/cryptors/machines"
	"github.com/bgallie/rotorsim/log"
)

var (
	cfgFile        string
	stateFileName  string
	machineName    string
	machineType    string
	inputFileName  string
	outputFileName string
	verbose        bool
	GitCommit      string = "not set"
	GitBranch      string = "not set"
	GitState       string = "not set"
	GitSummary     string = "not set"
	BuildDate      string = "not set"
	Version        string = "dev"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rotorsim",
	Short: "A simulator for historical rotor cipher machines",
	Long: `rotorsim simulates the Enigma family, the SIGABA, the Typex, the KL7,
the Nema and the SG39.  Machine state lives in an INI file that every
command reads, advances and writes back, so a session can be continued
across invocations.`,
	Version: Version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.rotorsim.yaml)")
	rootCmd.PersistentFlags().StringVarP(&stateFileName, "state", "s", "", "machine state file (default is $HOME/.rotorsim.state)")
	rootCmd.PersistentFlags().StringVarP(&machineName, "machine", "m", "Enigma", "machine to build when the state file does not exist yet")
	rootCmd.PersistentFlags().StringVarP(&machineType, "variant", "t", "", "machine variant, for Enigma one of Services, M3, M4, Railway, Tirpitz, Abwehr, KD")
	rootCmd.PersistentFlags().StringVarP(&inputFileName, "inputFile", "i", "-", "name of the text file to encrypt/decrypt")
	rootCmd.PersistentFlags().StringVarP(&outputFileName, "outputFile", "o", "", "name of the file receiving the result")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log what the simulator is doing")
	cobra.CheckErr(viper.BindPFlag("machine", rootCmd.PersistentFlags().Lookup("machine")))
	cobra.CheckErr(viper.BindPFlag("variant", rootCmd.PersistentFlags().Lookup("variant")))
	cobra.CheckErr(viper.BindPFlag("state", rootCmd.PersistentFlags().Lookup("state")))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".rotorsim" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".rotorsim")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	machineName = viper.GetString("machine")
	machineType = viper.GetString("variant")
	stateFileName = viper.GetString("state")
	if stateFileName == "" {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)
		stateFileName = fmt.Sprintf("%s%c.rotorsim.state", home, os.PathSeparator)
	}

	level := "ERROR"
	if verbose {
		level = "INFO"
	}
	machines.SetLogBackend(log.NewDefault(level, !verbose))
}

// loadMachine restores the machine from the state file, or builds the
// default machine named on the command line when no state exists yet.
func loadMachine() machines.Machine {
	data, err := os.ReadFile(stateFileName)
	if err != nil {
		if !os.IsNotExist(err) {
			cobra.CheckErr(err)
		}
		m, err := machines.MakeMachineByName(machineName, machineType)
		cobra.CheckErr(err)
		return m
	}
	m, err := machines.RestoreFromIni(data)
	cobra.CheckErr(err)
	return m
}

// saveMachine writes the machine state back to the state file.
func saveMachine(m machines.Machine) {
	f := ini.Empty()
	m.SaveIni(f)
	cobra.CheckErr(f.SaveTo(stateFileName))
}

/*
	getInputAndOutputFiles will return the input and output files to use while
	encrypting/decrypting data.  If input and/or output file names were given,
	then those files will be opened.  Otherwise stdin and stdout are used.
*/
func getInputAndOutputFiles() (*os.File, *os.File) {
	var fin *os.File
	var err error

	if len(inputFileName) > 0 && inputFileName != "-" {
		fin, err = os.Open(inputFileName)
		cobra.CheckErr(err)
	} else {
		fin = os.Stdin
	}

	var fout *os.File

	if len(outputFileName) > 0 && outputFileName != "-" {
		fout, err = os.Create(outputFileName)
		cobra.CheckErr(err)
	} else {
		fout = os.Stdout
	}
	return fin, fout
}

// checkError checks for errors that are not io.EOF and io.ErrUnexpectedEOF.
func checkError(e error) {
	if e != io.EOF && e != io.ErrUnexpectedEOF {
		cobra.CheckErr(e)
	}
}
