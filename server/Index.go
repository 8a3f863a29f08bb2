package server

// indexPage draws one canvas per simulation. Row 0 of the grid is drawn
// at the bottom.
const indexPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>gridlearn</title>
<style>
body { font-family: monospace; background: #fafafa; }
.sim { display: inline-block; margin: 1em; vertical-align: top; }
canvas { border: 1px solid #888; background: #fff; }
</style>
</head>
<body>
<div id="sims"></div>
<script>
const cell = 40;
const views = {};

function view(name) {
	if (views[name]) {
		return views[name];
	}
	const div = document.createElement("div");
	div.className = "sim";
	const label = document.createElement("div");
	const canvas = document.createElement("canvas");
	div.appendChild(label);
	div.appendChild(canvas);
	document.getElementById("sims").appendChild(div);
	views[name] = {label: label, canvas: canvas};
	return views[name];
}

function fill(ctx, size, c, colour) {
	ctx.fillStyle = colour;
	ctx.fillRect(c.x * cell + 2, (size - 1 - c.y) * cell + 2,
		cell - 4, cell - 4);
}

function draw(f) {
	const v = view(f.simulation);
	const px = f.size * cell;
	v.canvas.width = px;
	v.canvas.height = px;
	v.label.textContent = f.simulation + "  step " + f.step +
		"  accuracy " + f.accuracy.toFixed(3);

	const ctx = v.canvas.getContext("2d");
	ctx.clearRect(0, 0, px, px);
	(f.visited || []).forEach(c => fill(ctx, f.size, c, "#cde"));
	(f.obstacles || []).forEach(c => fill(ctx, f.size, c, "#333"));
	(f.agents || []).forEach(a => {
		const x = a.x * cell + cell / 2;
		const y = (f.size - 1 - a.y) * cell + cell / 2;
		ctx.fillStyle = a.colour;
		ctx.beginPath();
		ctx.arc(x, y, cell / 3, 0, 2 * Math.PI);
		ctx.fill();
	});
}

const ws = new WebSocket("ws://" + location.host + "/ws");
ws.onmessage = e => draw(JSON.parse(e.data));
</script>
</body>
</html>
`
