package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
)

func handleCompletion(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("completion", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("usage: modelhub completion [bash|zsh|fish]")
	}
	shell := fs.Arg(0)
	switch shell {
	case "bash":
		fmt.Print(bashCompletion)
	case "zsh":
		fmt.Print(zshCompletion)
	case "fish":
		fmt.Print(fishCompletion)
	default:
		return fmt.Errorf("unknown shell: %s", shell)
	}
	return nil
}

const bashCompletion = `# bash completion for modelhub
_modelhub_completions()
{
    local cur prev words cword
    _init_completion || return
    local cmds="config models setting share hub version help completion"
    if [[ ${cword} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "${cmds}" -- "$cur") )
        return
    fi
    case ${words[1]} in
        config)
            COMPREPLY=( $(compgen -W "validate print --config --log-level --json" -- "$cur") ) ;;
        models)
            COMPREPLY=( $(compgen -W "--config --key --log-level --json --output-json --cached" -- "$cur") ) ;;
        setting)
            COMPREPLY=( $(compgen -W "get set --config --key --log-level --json" -- "$cur") ) ;;
        share)
            COMPREPLY=( $(compgen -W "--config --key --log-level --json --open --copy" -- "$cur") ) ;;
        hub)
            COMPREPLY=( $(compgen -W "--config --key --log-level --json" -- "$cur") ) ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh fish" -- "$cur") ) ;;
        *) ;;
    esac
}
complete -F _modelhub_completions modelhub
`

const zshCompletion = `#compdef modelhub
# zsh completion for modelhub (basic)
_modelhub() {
  local -a cmds
  cmds=(config models setting share hub version help completion)
  if (( CURRENT == 2 )); then
    _describe 'command' cmds
    return
  fi
  case $words[2] in
    config)
      _arguments '*:options:(--config --log-level --json validate print)'
      ;;
    models)
      _arguments '*:options:(--config --key --log-level --json --output-json --cached)'
      ;;
    setting)
      _arguments '*:options:(--config --key --log-level --json get set)'
      ;;
    share)
      _arguments '*:options:(--config --key --log-level --json --open --copy)'
      ;;
    hub)
      _arguments '*:options:(--config --key --log-level --json)'
      ;;
    completion)
      _arguments '*:options:(bash zsh fish)'
      ;;
  esac
}
compdef _modelhub modelhub
`

const fishCompletion = `# fish completion for modelhub
complete -c modelhub -f -n "__fish_use_subcommand" -a "config" -d "config ops"
complete -c modelhub -f -n "__fish_use_subcommand" -a "models" -d "list model groups"
complete -c modelhub -f -n "__fish_use_subcommand" -a "setting" -d "public hub flag"
complete -c modelhub -f -n "__fish_use_subcommand" -a "share" -d "share link"
complete -c modelhub -f -n "__fish_use_subcommand" -a "hub" -d "dashboard"
complete -c modelhub -f -n "__fish_use_subcommand" -a "version" -d "print version"
complete -c modelhub -f -n "__fish_use_subcommand" -a "completion" -d "shell completions"

# Common flags
for cmd in config models setting share hub
  complete -c modelhub -n "__fish_seen_subcommand_from $cmd" -l config -d "Path to config"
  complete -c modelhub -n "__fish_seen_subcommand_from $cmd" -l log-level -d "Log level"
  complete -c modelhub -n "__fish_seen_subcommand_from $cmd" -l key -d "Access token"
end
complete -c modelhub -n "__fish_seen_subcommand_from models" -l output-json -d "JSON listing"
complete -c modelhub -n "__fish_seen_subcommand_from models" -l cached -d "List from local cache"
complete -c modelhub -n "__fish_seen_subcommand_from setting" -a "get set" -d "read or write the flag"
complete -c modelhub -n "__fish_seen_subcommand_from share" -l open -d "Open in browser"
complete -c modelhub -n "__fish_seen_subcommand_from share" -l copy -d "Copy to clipboard"
`
