package server

import (
	"net/http"

	"github.com/charmbracelet/log"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write([]byte(indexHTML)); err != nil {
		log.Error("writing index page", "err", err)
	}
}

// indexHTML is the whole dashboard: it fetches the current snapshot, draws
// the branch timeline with Plotly, and subscribes to the WebSocket for live
// updates.
const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>branchvista</title>
	<script src="https://cdn.plot.ly/plotly-2.35.2.min.js"></script>
	<style>
		body {
			font-family: system-ui, -apple-system, sans-serif;
			margin: 0;
			background: #282b30;
			color: #e0e0e0;
		}
		header {
			display: flex;
			justify-content: space-between;
			align-items: baseline;
			padding: 12px 24px;
			border-bottom: 1px solid rgba(255, 255, 255, 0.1);
		}
		header h1 { font-size: 18px; margin: 0; }
		header .stats { color: #9aa0a6; font-size: 13px; }
		#chart { width: 100%; height: calc(100vh - 52px); }
		#empty {
			display: none;
			padding: 48px;
			text-align: center;
			color: #9aa0a6;
		}
	</style>
</head>
<body>
	<header>
		<h1 id="repo">branchvista</h1>
		<div class="stats" id="stats"></div>
	</header>
	<div id="chart"></div>
	<div id="empty">No commit data available.</div>

	<script>
	function draw(snapshot) {
		const repoEl = document.getElementById('repo');
		const statsEl = document.getElementById('stats');
		if (snapshot.repository) {
			repoEl.textContent = snapshot.repository.full_name;
		}
		statsEl.textContent = snapshot.stats.totalCommits + ' commits · ' +
			snapshot.stats.uniqueAuthors + ' contributors';

		const layout = snapshot.layout;
		if (!layout.markers || layout.markers.length === 0) {
			document.getElementById('empty').style.display = 'block';
			document.getElementById('chart').style.display = 'none';
			return;
		}
		document.getElementById('empty').style.display = 'none';
		document.getElementById('chart').style.display = 'block';

		const traces = [];
		for (const line of (layout.polylines || [])) {
			traces.push({
				x: line.points.map(p => p.date),
				y: line.points.map(p => p.lane),
				mode: 'lines',
				line: {color: line.color, width: 2},
				name: line.branch,
				showlegend: true,
				hoverinfo: 'none',
			});
		}
		traces.push({
			x: layout.markers.map(m => m.date),
			y: layout.markers.map(m => m.lane),
			mode: 'markers',
			marker: {
				size: 12,
				color: layout.markers.map(m => m.color),
				line: {width: 2, color: 'white'},
			},
			text: layout.markers.map(m => m.label),
			hoverinfo: 'text',
			showlegend: false,
		});

		const lanes = Object.keys(layout.laneNames || {}).map(Number).sort((a, b) => a - b);
		Plotly.react('chart', traces, {
			plot_bgcolor: '#282b30',
			paper_bgcolor: '#282b30',
			margin: {l: 120, r: 50, t: 30, b: 50},
			xaxis: {
				showgrid: true,
				gridcolor: 'rgba(255, 255, 255, 0.1)',
				title: {text: 'Commit Timeline', font: {color: 'white'}},
				tickfont: {color: 'white'},
			},
			yaxis: {
				showgrid: true,
				gridcolor: 'rgba(255, 255, 255, 0.1)',
				tickvals: lanes,
				ticktext: lanes.map(l => layout.laneNames[l]),
				title: {text: 'Branches', font: {color: 'white'}},
				tickfont: {color: 'white'},
			},
			hoverlabel: {bgcolor: 'white', font: {size: 12, color: '#282b30'}},
			legend: {font: {color: 'white'}},
		});
	}

	async function init() {
		try {
			const resp = await fetch('/api/snapshot');
			if (resp.ok) {
				draw(await resp.json());
			}
		} catch (err) {
			console.error('initial load failed', err);
		}

		const proto = location.protocol === 'https:' ? 'wss:' : 'ws:';
		const ws = new WebSocket(proto + '//' + location.host + '/api/ws');
		ws.onmessage = (ev) => {
			const msg = JSON.parse(ev.data);
			if (msg.type === 'snapshot' && msg.data) {
				draw(msg.data);
			}
		};
		ws.onclose = () => setTimeout(init, 5000);
	}

	init();
	</script>
</body>
</html>
`
