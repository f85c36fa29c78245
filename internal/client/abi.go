package client

// GameABI is the JSON ABI of the on-chain game contract.
const GameABI = `[
	{"type":"function","name":"createGame","stateMutability":"nonpayable","inputs":[],"outputs":[]},
	{"type":"function","name":"hasGame","stateMutability":"view","inputs":[{"name":"player","type":"address"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"getBoard","stateMutability":"view","inputs":[{"name":"player","type":"address"}],"outputs":[{"name":"","type":"uint64"}]},
	{"type":"function","name":"getBoardAsArray","stateMutability":"view","inputs":[{"name":"player","type":"address"}],"outputs":[{"name":"","type":"uint8[][]"}]},
	{"type":"function","name":"getPlayerPoints","stateMutability":"view","inputs":[{"name":"player","type":"address"}],"outputs":[{"name":"","type":"uint32"}]},
	{"type":"function","name":"getTotalPlayers","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint32"}]},
	{"type":"function","name":"setPiece","stateMutability":"nonpayable","inputs":[{"name":"x","type":"uint8"},{"name":"y","type":"uint8"}],"outputs":[]},
	{"type":"function","name":"passTurn","stateMutability":"nonpayable","inputs":[],"outputs":[]},
	{"type":"function","name":"isGameEnded","stateMutability":"view","inputs":[{"name":"player","type":"address"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"getGameResult","stateMutability":"view","inputs":[{"name":"player","type":"address"}],"outputs":[{"name":"","type":"uint32"},{"name":"","type":"uint32"},{"name":"","type":"uint8"}]},
	{"type":"function","name":"newGame","stateMutability":"nonpayable","inputs":[],"outputs":[]},
	{"type":"function","name":"abandonGame","stateMutability":"nonpayable","inputs":[],"outputs":[]},
	{"type":"function","name":"getTopPlayers","stateMutability":"view","inputs":[{"name":"n","type":"uint32"}],"outputs":[{"name":"","type":"address[]"},{"name":"","type":"uint32[]"}]},
	{"type":"function","name":"getPlayerRank","stateMutability":"view","inputs":[{"name":"player","type":"address"}],"outputs":[{"name":"","type":"uint32"}]}
]`
