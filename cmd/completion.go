package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"

	"github.com/nibzard/taskline/internal/config"
)

// subcommands lists the names offered by shell completion.
var subcommands = []string{
	"run", "tui", "exec", "ls", "export", "import", "doctor",
	"tail", "config", "completion", "version", "help",
}

// sessionKeywords are completed after `taskline exec`.
var sessionKeywords = []string{"todo", "deadline", "event", "list", "done", "delete", "bye"}

// completionCommand prints a completion script for the given shell.
func completionCommand(_ *config.Config, args []string) error {
	if len(args) != 1 {
		return errors.New("completion requires a shell: bash, zsh, fish or powershell")
	}

	words := strings.Join(subcommands, " ")
	keywords := strings.Join(sessionKeywords, " ")

	switch args[0] {
	case "bash":
		fmt.Printf(heredoc.Doc(`
			# taskline bash completion
			_taskline() {
			    local cur prev
			    cur="${COMP_WORDS[COMP_CWORD]}"
			    prev="${COMP_WORDS[COMP_CWORD-1]}"
			    case "$prev" in
			        exec)
			            COMPREPLY=( $(compgen -W "%s" -- "$cur") )
			            return ;;
			        completion)
			            COMPREPLY=( $(compgen -W "bash zsh fish powershell" -- "$cur") )
			            return ;;
			    esac
			    if [ "$COMP_CWORD" -eq 1 ]; then
			        COMPREPLY=( $(compgen -W "%s" -- "$cur") )
			    else
			        COMPREPLY=( $(compgen -f -- "$cur") )
			    fi
			}
			complete -F _taskline taskline
		`), keywords, words)
	case "zsh":
		fmt.Printf(heredoc.Doc(`
			#compdef taskline
			# taskline zsh completion
			_taskline() {
			    if (( CURRENT == 2 )); then
			        compadd %s
			    elif [[ ${words[2]} == exec && CURRENT == 3 ]]; then
			        compadd %s
			    else
			        _files
			    fi
			}
			compdef _taskline taskline
		`), words, keywords)
	case "fish":
		fmt.Printf(heredoc.Doc(`
			# taskline fish completion
			complete -c taskline -f -n '__fish_use_subcommand' -a '%s'
			complete -c taskline -f -n '__fish_seen_subcommand_from exec' -a '%s'
			complete -c taskline -f -n '__fish_seen_subcommand_from completion' -a 'bash zsh fish powershell'
		`), words, keywords)
	case "powershell", "pwsh":
		fmt.Printf(heredoc.Doc(`
			# taskline PowerShell completion
			Register-ArgumentCompleter -Native -CommandName taskline -ScriptBlock {
			    param($wordToComplete, $commandAst, $cursorPosition)
			    $elements = $commandAst.CommandElements
			    $candidates = @(%s)
			    if ($elements.Count -ge 2 -and $elements[1].ToString() -eq 'exec') {
			        $candidates = @(%s)
			    }
			    $candidates | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
			        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
			    }
			}
		`), quoteAll(subcommands), quoteAll(sessionKeywords))
	default:
		return fmt.Errorf("unsupported shell: %s (expected bash, zsh, fish or powershell)", args[0])
	}
	return nil
}

func quoteAll(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = "'" + w + "'"
	}
	return strings.Join(quoted, ", ")
}
